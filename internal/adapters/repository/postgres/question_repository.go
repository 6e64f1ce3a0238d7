package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type questionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) ports.QuestionRepository {
	return &questionRepository{
		db: db,
	}
}

func (r *questionRepository) Save(ctx context.Context, question *domain.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryQuestion := `
		INSERT INTO questions (id, text, publish_at, close_at, visible)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.ExecContext(ctx, queryQuestion, question.ID, question.Text, question.PublishAt, question.CloseAt, question.Visible)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}

	queryChoice := `
		INSERT INTO choices (id, question_id, text)
		VALUES ($1, $2, $3)
	`
	stmt, err := tx.PrepareContext(ctx, queryChoice)
	if err != nil {
		return fmt.Errorf("failed to prepare choice statement: %w", err)
	}
	defer stmt.Close()

	for _, choice := range question.Choices {
		_, err = stmt.ExecContext(ctx, choice.ID, choice.QuestionID, choice.Text)
		if err != nil {
			return fmt.Errorf("failed to insert choice: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	queryQuestion := `
		SELECT id, text, publish_at, close_at, visible, created_at
		FROM questions
		WHERE id = $1
	`

	var question domain.Question
	err := r.db.QueryRowContext(ctx, queryQuestion, id).Scan(
		&question.ID, &question.Text, &question.PublishAt, &question.CloseAt, &question.Visible, &question.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	choices, err := r.fetchChoices(ctx, question.ID)
	if err != nil {
		return nil, err
	}
	question.Choices = choices

	return &question, nil
}

func (r *questionRepository) ListPublished(ctx context.Context, now time.Time, limit int) ([]*domain.Question, error) {
	query := `
		SELECT id, text, publish_at, close_at, visible, created_at
		FROM questions
		WHERE visible AND publish_at <= $1
		ORDER BY publish_at DESC, created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list published questions: %w", err)
	}
	defer rows.Close()

	return r.scanQuestions(ctx, rows)
}

func (r *questionRepository) SetVisible(ctx context.Context, id uuid.UUID, visible bool) error {
	query := `UPDATE questions SET visible = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, visible)
	if err != nil {
		return fmt.Errorf("failed to update visibility: %w", err)
	}
	return requireRowAffected(res)
}

func (r *questionRepository) UpdateDates(ctx context.Context, id uuid.UUID, publishAt time.Time, closeAt *time.Time) error {
	query := `UPDATE questions SET publish_at = $2, close_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, publishAt, closeAt)
	if err != nil {
		return fmt.Errorf("failed to update dates: %w", err)
	}
	return requireRowAffected(res)
}

func (r *questionRepository) scanQuestions(ctx context.Context, rows *sql.Rows) ([]*domain.Question, error) {
	var questions []*domain.Question
	for rows.Next() {
		var question domain.Question
		if err := rows.Scan(&question.ID, &question.Text, &question.PublishAt, &question.CloseAt, &question.Visible, &question.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}

		choices, err := r.fetchChoices(ctx, question.ID)
		if err != nil {
			return nil, err
		}
		question.Choices = choices

		questions = append(questions, &question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepository) fetchChoices(ctx context.Context, questionID uuid.UUID) ([]domain.Choice, error) {
	queryChoices := `
		SELECT id, question_id, text, created_at
		FROM choices
		WHERE question_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, queryChoices, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get choices: %w", err)
	}
	defer rows.Close()

	var choices []domain.Choice
	for rows.Next() {
		var choice domain.Choice
		if err := rows.Scan(&choice.ID, &choice.QuestionID, &choice.Text, &choice.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, choice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating choices: %w", err)
	}
	return choices, nil
}

func requireRowAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}
