package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// Upsert relies on the UNIQUE (user_id, question_id) constraint: the whole
// create-or-move-vote step is a single statement, so two concurrent votes
// from the same user cannot leave two rows behind.
func (r *voteRepository) Upsert(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, user_id, question_id, choice_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, question_id) DO UPDATE
		SET choice_id = EXCLUDED.choice_id,
		    updated_at = NOW();
	`
	_, err := r.db.ExecContext(ctx, query, vote.ID, vote.UserID, vote.QuestionID, vote.ChoiceID)
	if err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}
	return nil
}

func (r *voteRepository) GetUserVote(ctx context.Context, questionID, userID uuid.UUID) (*domain.Vote, error) {
	query := `
		SELECT id, user_id, question_id, choice_id, created_at, updated_at
		FROM votes
		WHERE question_id = $1 AND user_id = $2
	`
	vote := &domain.Vote{}
	err := r.db.QueryRowContext(ctx, query, questionID, userID).Scan(
		&vote.ID, &vote.UserID, &vote.QuestionID, &vote.ChoiceID, &vote.CreatedAt, &vote.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user vote: %w", err)
	}
	return vote, nil
}

func (r *voteRepository) CountByChoice(ctx context.Context, questionID uuid.UUID) (map[uuid.UUID]int64, error) {
	query := `
		SELECT choice_id, COUNT(*)
		FROM votes
		WHERE question_id = $1
		GROUP BY choice_id
	`
	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var choiceID uuid.UUID
		var count int64
		if err := rows.Scan(&choiceID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[choiceID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote counts: %w", err)
	}
	return counts, nil
}
