package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

func TestCreateQuestion(t *testing.T) {
	ctx := context.Background()
	publishAt := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	valid := func() ports.CreateQuestionInput {
		return ports.CreateQuestionInput{
			Text:      "favorite letter?",
			PublishAt: publishAt,
			Visible:   true,
			Choices:   []string{"A", "B"},
		}
	}

	t.Run("creates question with inline choices", func(t *testing.T) {
		repo := newFakeQuestionRepo()
		svc := NewQuestionService(repo)

		question, err := svc.Create(ctx, valid())
		require.NoError(t, err)
		assert.Len(t, question.Choices, 2)
		for _, choice := range question.Choices {
			assert.Equal(t, question.ID, choice.QuestionID)
		}
		assert.Contains(t, repo.questions, question.ID)
	})

	t.Run("rejects close date before publish date", func(t *testing.T) {
		input := valid()
		closeAt := publishAt.Add(-time.Hour)
		input.CloseAt = &closeAt

		_, err := NewQuestionService(newFakeQuestionRepo()).Create(ctx, input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("accepts close date equal to publish date", func(t *testing.T) {
		input := valid()
		closeAt := publishAt
		input.CloseAt = &closeAt

		_, err := NewQuestionService(newFakeQuestionRepo()).Create(ctx, input)
		assert.NoError(t, err)
	})

	t.Run("rejects overlong question text", func(t *testing.T) {
		input := valid()
		input.Text = strings.Repeat("x", 281)

		_, err := NewQuestionService(newFakeQuestionRepo()).Create(ctx, input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects overlong choice text", func(t *testing.T) {
		input := valid()
		input.Choices = []string{strings.Repeat("x", 81), "B"}

		_, err := NewQuestionService(newFakeQuestionRepo()).Create(ctx, input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("empty choices are dropped and the minimum still applies", func(t *testing.T) {
		input := valid()
		input.Choices = []string{"A", "", ""}

		_, err := NewQuestionService(newFakeQuestionRepo()).Create(ctx, input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestGetQuestion(t *testing.T) {
	ctx := context.Background()
	publishAt := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("returns the question with its choices", func(t *testing.T) {
		question := questionWithChoices(publishAt, nil, "A", "B")
		svc := NewQuestionService(newFakeQuestionRepo(question))

		got, err := svc.Get(ctx, question.ID.String())
		require.NoError(t, err)
		assert.Equal(t, question.ID, got.ID)
		assert.Len(t, got.Choices, 2)
	})

	t.Run("unpublished question is still readable here", func(t *testing.T) {
		question := questionWithChoices(publishAt.Add(24*time.Hour), nil, "A", "B")
		question.Visible = false
		svc := NewQuestionService(newFakeQuestionRepo(question))

		_, err := svc.Get(ctx, question.ID.String())
		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := NewQuestionService(newFakeQuestionRepo())
		_, err := svc.Get(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := NewQuestionService(newFakeQuestionRepo())
		_, err := svc.Get(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidQuestionID)
	})
}

func TestUpdateDates(t *testing.T) {
	ctx := context.Background()
	publishAt := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rejects inverted window on update too", func(t *testing.T) {
		question := questionWithChoices(publishAt, nil, "A", "B")
		svc := NewQuestionService(newFakeQuestionRepo(question))

		closeAt := publishAt.Add(-time.Minute)
		err := svc.UpdateDates(ctx, question.ID.String(), publishAt, &closeAt)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := NewQuestionService(newFakeQuestionRepo())
		err := svc.UpdateDates(ctx, "nope", publishAt, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidQuestionID)
	})
}
