package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type questionService struct {
	repo ports.QuestionRepository
}

func NewQuestionService(repo ports.QuestionRepository) ports.QuestionService {
	return &questionService{
		repo: repo,
	}
}

func (s *questionService) Create(ctx context.Context, input ports.CreateQuestionInput) (*domain.Question, error) {
	if input.Text == "" {
		return nil, fmt.Errorf("%w: question text is required", domain.ErrInvalidInput)
	}
	if len(input.Text) > domain.MaxQuestionTextLen {
		return nil, fmt.Errorf("%w: question text exceeds %d characters", domain.ErrInvalidInput, domain.MaxQuestionTextLen)
	}
	if err := validateDates(input.PublishAt, input.CloseAt); err != nil {
		return nil, err
	}

	questionID := uuid.New()
	now := time.Now()

	question := &domain.Question{
		ID:        questionID,
		Text:      input.Text,
		PublishAt: input.PublishAt,
		CloseAt:   input.CloseAt,
		Visible:   input.Visible,
		CreatedAt: now,
	}

	for _, choiceText := range input.Choices {
		if choiceText == "" {
			continue
		}
		if len(choiceText) > domain.MaxChoiceTextLen {
			return nil, fmt.Errorf("%w: choice text exceeds %d characters", domain.ErrInvalidInput, domain.MaxChoiceTextLen)
		}
		question.Choices = append(question.Choices, domain.Choice{
			ID:         uuid.New(),
			QuestionID: questionID,
			Text:       choiceText,
			CreatedAt:  now,
		})
	}

	if len(question.Choices) < 2 {
		return nil, fmt.Errorf("%w: at least two valid choices are required", domain.ErrInvalidInput)
	}

	if err := s.repo.Save(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

func (s *questionService) Get(ctx context.Context, id string) (*domain.Question, error) {
	questionID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidQuestionID
	}
	return s.repo.GetByID(ctx, questionID)
}

func (s *questionService) SetVisible(ctx context.Context, id string, visible bool) error {
	questionID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidQuestionID
	}
	return s.repo.SetVisible(ctx, questionID, visible)
}

func (s *questionService) UpdateDates(ctx context.Context, id string, publishAt time.Time, closeAt *time.Time) error {
	questionID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidQuestionID
	}
	if err := validateDates(publishAt, closeAt); err != nil {
		return err
	}
	return s.repo.UpdateDates(ctx, questionID, publishAt, closeAt)
}

// validateDates rejects a close date before the publish date instead of
// storing an inverted window.
func validateDates(publishAt time.Time, closeAt *time.Time) error {
	if publishAt.IsZero() {
		return fmt.Errorf("%w: publish date is required", domain.ErrInvalidInput)
	}
	if closeAt != nil && closeAt.Before(publishAt) {
		return fmt.Errorf("%w: close date must not precede publish date", domain.ErrInvalidInput)
	}
	return nil
}
