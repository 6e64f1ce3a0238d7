package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
)

type QuestionRepository interface {
	Save(ctx context.Context, question *domain.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ListPublished(ctx context.Context, now time.Time, limit int) ([]*domain.Question, error)
	SetVisible(ctx context.Context, id uuid.UUID, visible bool) error
	UpdateDates(ctx context.Context, id uuid.UUID, publishAt time.Time, closeAt *time.Time) error
}

type CreateQuestionInput struct {
	Text      string
	PublishAt time.Time
	CloseAt   *time.Time
	Visible   bool
	Choices   []string
}

type QuestionService interface {
	Create(ctx context.Context, input CreateQuestionInput) (*domain.Question, error)
	Get(ctx context.Context, id string) (*domain.Question, error)
	SetVisible(ctx context.Context, id string, visible bool) error
	UpdateDates(ctx context.Context, id string, publishAt time.Time, closeAt *time.Time) error
}

// QuestionDetail is what the detail page needs: the question, whether
// voting is still open, and which choice the caller previously selected.
type QuestionDetail struct {
	Question       *domain.Question
	CanVote        bool
	SelectedChoice *domain.Choice
}

// QuestionResults carries per-choice derived counts for the results page.
type QuestionResults struct {
	Question   *domain.Question
	Choices    []domain.ChoiceResult
	TotalVotes int64
}

type PollQueryService interface {
	ListPublished(ctx context.Context, now time.Time) ([]*domain.Question, error)
	GetDetail(ctx context.Context, questionID string, userID *uuid.UUID, now time.Time) (*QuestionDetail, error)
	GetResults(ctx context.Context, questionID string, now time.Time) (*QuestionResults, error)
}
