package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
)

type VoteRepository interface {
	// Upsert stores the vote as a single atomic statement: one row per
	// (user_id, question_id), a repeat vote overwrites choice_id in place.
	Upsert(ctx context.Context, vote *domain.Vote) error
	GetUserVote(ctx context.Context, questionID, userID uuid.UUID) (*domain.Vote, error)
	CountByChoice(ctx context.Context, questionID uuid.UUID) (map[uuid.UUID]int64, error)
}

type CastVoteInput struct {
	QuestionID uuid.UUID
	ChoiceID   uuid.UUID
	UserID     uuid.UUID
	Now        time.Time
}

type VotingService interface {
	CastVote(ctx context.Context, input CastVoteInput) error
}
