package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

func TestListPublished(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2022, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("caps at five newest and skips unpublished", func(t *testing.T) {
		repo := newFakeQuestionRepo()
		for i := 0; i < 7; i++ {
			q := questionWithChoices(now.Add(-time.Duration(i+1)*time.Hour), nil, "A", "B")
			require.NoError(t, repo.Save(ctx, q))
		}
		future := questionWithChoices(now.Add(time.Hour), nil, "A", "B")
		require.NoError(t, repo.Save(ctx, future))
		hidden := questionWithChoices(now.Add(-time.Minute), nil, "A", "B")
		hidden.Visible = false
		require.NoError(t, repo.Save(ctx, hidden))

		svc := NewPollQueryService(repo, newFakeVoteRepo(), nil)
		questions, err := svc.ListPublished(ctx, now)
		require.NoError(t, err)

		assert.Len(t, questions, 5)
		for i, q := range questions {
			assert.True(t, q.IsPublished(now))
			if i > 0 {
				assert.False(t, q.PublishAt.After(questions[i-1].PublishAt))
			}
		}
	})
}

func TestGetDetail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2022, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("unknown id", func(t *testing.T) {
		svc := NewPollQueryService(newFakeQuestionRepo(), newFakeVoteRepo(), nil)
		_, err := svc.GetDetail(ctx, uuid.NewString(), nil, now)
		assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc := NewPollQueryService(newFakeQuestionRepo(), newFakeVoteRepo(), nil)
		_, err := svc.GetDetail(ctx, "not-a-uuid", nil, now)
		assert.ErrorIs(t, err, domain.ErrInvalidQuestionID)
	})

	t.Run("future question hidden even when visible", func(t *testing.T) {
		question := questionWithChoices(now.Add(24*time.Hour), nil, "A", "B")
		svc := NewPollQueryService(newFakeQuestionRepo(question), newFakeVoteRepo(), nil)
		_, err := svc.GetDetail(ctx, question.ID.String(), nil, now)
		assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
	})

	t.Run("ended question reports voting closed", func(t *testing.T) {
		closeAt := now.Add(-time.Hour)
		question := questionWithChoices(now.Add(-48*time.Hour), &closeAt, "A", "B")
		svc := NewPollQueryService(newFakeQuestionRepo(question), newFakeVoteRepo(), nil)

		detail, err := svc.GetDetail(ctx, question.ID.String(), nil, now)
		require.NoError(t, err)
		assert.False(t, detail.CanVote)
	})

	t.Run("prior vote is surfaced for the caller", func(t *testing.T) {
		question := questionWithChoices(now.Add(-time.Hour), nil, "A", "B")
		voteRepo := newFakeVoteRepo()
		userID := uuid.New()
		require.NoError(t, voteRepo.Upsert(ctx, &domain.Vote{
			ID:         uuid.New(),
			UserID:     userID,
			QuestionID: question.ID,
			ChoiceID:   question.Choices[1].ID,
		}))

		svc := NewPollQueryService(newFakeQuestionRepo(question), voteRepo, nil)
		detail, err := svc.GetDetail(ctx, question.ID.String(), &userID, now)
		require.NoError(t, err)

		require.NotNil(t, detail.SelectedChoice)
		assert.Equal(t, "B", detail.SelectedChoice.Text)
	})

	t.Run("no vote means no selection", func(t *testing.T) {
		question := questionWithChoices(now.Add(-time.Hour), nil, "A", "B")
		userID := uuid.New()
		svc := NewPollQueryService(newFakeQuestionRepo(question), newFakeVoteRepo(), nil)

		detail, err := svc.GetDetail(ctx, question.ID.String(), &userID, now)
		require.NoError(t, err)
		assert.Nil(t, detail.SelectedChoice)
	})
}

func TestGetResults(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2022, 1, 1, 12, 0, 0, 0, time.UTC)

	castVote := func(t *testing.T, svc ports.VotingService, question *domain.Question, choiceIdx int, userID uuid.UUID) {
		t.Helper()
		require.NoError(t, svc.CastVote(ctx, ports.CastVoteInput{
			QuestionID: question.ID,
			ChoiceID:   question.Choices[choiceIdx].ID,
			UserID:     userID,
			Now:        now,
		}))
	}

	t.Run("counts follow a moved vote", func(t *testing.T) {
		question := questionWithChoices(now.Add(-24*time.Hour), nil, "X", "Y")
		repo := newFakeQuestionRepo(question)
		voteRepo := newFakeVoteRepo()
		querySvc := NewPollQueryService(repo, voteRepo, nil)
		votingSvc := NewVotingService(repo, voteRepo, nil)
		userID := uuid.New()

		castVote(t, votingSvc, question, 0, userID)

		results, err := querySvc.GetResults(ctx, question.ID.String(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), results.Choices[0].VoteCount)
		assert.Equal(t, int64(0), results.Choices[1].VoteCount)
		assert.Equal(t, int64(1), results.TotalVotes)

		castVote(t, votingSvc, question, 1, userID)

		results, err = querySvc.GetResults(ctx, question.ID.String(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(0), results.Choices[0].VoteCount)
		assert.Equal(t, int64(1), results.Choices[1].VoteCount)
		assert.Equal(t, int64(1), results.TotalVotes)
	})

	t.Run("ended question results stay readable", func(t *testing.T) {
		closeAt := now.Add(-time.Hour)
		question := questionWithChoices(now.Add(-48*time.Hour), &closeAt, "A", "B")
		svc := NewPollQueryService(newFakeQuestionRepo(question), newFakeVoteRepo(), nil)

		results, err := svc.GetResults(ctx, question.ID.String(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(0), results.TotalVotes)
	})

	t.Run("cached counts are served and refilled", func(t *testing.T) {
		question := questionWithChoices(now.Add(-time.Hour), nil, "A", "B")
		repo := newFakeQuestionRepo(question)
		voteRepo := newFakeVoteRepo()
		cache := newFakeResultCache()
		querySvc := NewPollQueryService(repo, voteRepo, cache)
		votingSvc := NewVotingService(repo, voteRepo, cache)

		castVote(t, votingSvc, question, 0, uuid.New())

		results, err := querySvc.GetResults(ctx, question.ID.String(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), results.TotalVotes)
		assert.Contains(t, cache.counts, question.ID)

		// A stale cache entry wins until the next vote invalidates it.
		cache.counts[question.ID] = map[uuid.UUID]int64{question.Choices[0].ID: 42}
		results, err = querySvc.GetResults(ctx, question.ID.String(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(42), results.TotalVotes)
	})
}
