package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
)

type fakeQuestionRepo struct {
	questions map[uuid.UUID]*domain.Question
}

func newFakeQuestionRepo(questions ...*domain.Question) *fakeQuestionRepo {
	repo := &fakeQuestionRepo{questions: make(map[uuid.UUID]*domain.Question)}
	for _, q := range questions {
		repo.questions[q.ID] = q
	}
	return repo
}

func (r *fakeQuestionRepo) Save(_ context.Context, question *domain.Question) error {
	r.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Question, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return question, nil
}

func (r *fakeQuestionRepo) ListPublished(_ context.Context, now time.Time, limit int) ([]*domain.Question, error) {
	var published []*domain.Question
	for _, q := range r.questions {
		if q.IsPublished(now) {
			published = append(published, q)
		}
	}
	sort.Slice(published, func(i, j int) bool {
		return published[i].PublishAt.After(published[j].PublishAt)
	})
	if len(published) > limit {
		published = published[:limit]
	}
	return published, nil
}

func (r *fakeQuestionRepo) SetVisible(_ context.Context, id uuid.UUID, visible bool) error {
	question, ok := r.questions[id]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	question.Visible = visible
	return nil
}

func (r *fakeQuestionRepo) UpdateDates(_ context.Context, id uuid.UUID, publishAt time.Time, closeAt *time.Time) error {
	question, ok := r.questions[id]
	if !ok {
		return domain.ErrQuestionNotFound
	}
	question.PublishAt = publishAt
	question.CloseAt = closeAt
	return nil
}

type voteKey struct {
	userID     uuid.UUID
	questionID uuid.UUID
}

type fakeVoteRepo struct {
	votes map[voteKey]*domain.Vote
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[voteKey]*domain.Vote)}
}

func (r *fakeVoteRepo) Upsert(_ context.Context, vote *domain.Vote) error {
	key := voteKey{userID: vote.UserID, questionID: vote.QuestionID}
	if existing, ok := r.votes[key]; ok {
		existing.ChoiceID = vote.ChoiceID
		existing.UpdatedAt = vote.CreatedAt
		return nil
	}
	copied := *vote
	r.votes[key] = &copied
	return nil
}

func (r *fakeVoteRepo) GetUserVote(_ context.Context, questionID, userID uuid.UUID) (*domain.Vote, error) {
	vote, ok := r.votes[voteKey{userID: userID, questionID: questionID}]
	if !ok {
		return nil, nil
	}
	return vote, nil
}

func (r *fakeVoteRepo) CountByChoice(_ context.Context, questionID uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	for _, vote := range r.votes {
		if vote.QuestionID == questionID {
			counts[vote.ChoiceID]++
		}
	}
	return counts, nil
}

type fakeResultCache struct {
	counts      map[uuid.UUID]map[uuid.UUID]int64
	invalidated int
}

func newFakeResultCache() *fakeResultCache {
	return &fakeResultCache{counts: make(map[uuid.UUID]map[uuid.UUID]int64)}
}

func (c *fakeResultCache) GetCounts(_ context.Context, questionID uuid.UUID) (map[uuid.UUID]int64, error) {
	return c.counts[questionID], nil
}

func (c *fakeResultCache) SetCounts(_ context.Context, questionID uuid.UUID, counts map[uuid.UUID]int64) error {
	c.counts[questionID] = counts
	return nil
}

func (c *fakeResultCache) Invalidate(_ context.Context, questionID uuid.UUID) error {
	delete(c.counts, questionID)
	c.invalidated++
	return nil
}

func questionWithChoices(publishAt time.Time, closeAt *time.Time, choiceTexts ...string) *domain.Question {
	questionID := uuid.New()
	question := &domain.Question{
		ID:        questionID,
		Text:      "what do you think?",
		PublishAt: publishAt,
		CloseAt:   closeAt,
		Visible:   true,
		CreatedAt: publishAt,
	}
	for _, text := range choiceTexts {
		question.Choices = append(question.Choices, domain.Choice{
			ID:         uuid.New(),
			QuestionID: questionID,
			Text:       text,
		})
	}
	return question
}
