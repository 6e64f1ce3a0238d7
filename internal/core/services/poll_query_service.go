package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

// listLimit caps the index page at the most recent published questions.
const listLimit = 5

type pollQueryService struct {
	questionRepo ports.QuestionRepository
	voteRepo     ports.VoteRepository
	resultCache  ports.ResultCache
}

// NewPollQueryService builds the read side. resultCache may be nil, in
// which case counts are always aggregated from the vote rows.
func NewPollQueryService(questionRepo ports.QuestionRepository, voteRepo ports.VoteRepository, resultCache ports.ResultCache) ports.PollQueryService {
	return &pollQueryService{
		questionRepo: questionRepo,
		voteRepo:     voteRepo,
		resultCache:  resultCache,
	}
}

func (s *pollQueryService) ListPublished(ctx context.Context, now time.Time) ([]*domain.Question, error) {
	return s.questionRepo.ListPublished(ctx, now, listLimit)
}

func (s *pollQueryService) GetDetail(ctx context.Context, questionID string, userID *uuid.UUID, now time.Time) (*ports.QuestionDetail, error) {
	question, err := s.publishedQuestion(ctx, questionID, now)
	if err != nil {
		return nil, err
	}

	detail := &ports.QuestionDetail{
		Question: question,
		CanVote:  question.CanVote(now),
	}

	if userID != nil {
		vote, err := s.voteRepo.GetUserVote(ctx, question.ID, *userID)
		if err != nil {
			return nil, err
		}
		if vote != nil {
			detail.SelectedChoice = question.ChoiceByID(vote.ChoiceID)
		}
	}

	return detail, nil
}

func (s *pollQueryService) GetResults(ctx context.Context, questionID string, now time.Time) (*ports.QuestionResults, error) {
	question, err := s.publishedQuestion(ctx, questionID, now)
	if err != nil {
		return nil, err
	}

	counts, err := s.choiceCounts(ctx, question.ID)
	if err != nil {
		return nil, err
	}

	results := &ports.QuestionResults{Question: question}
	for _, choice := range question.Choices {
		count := counts[choice.ID]
		results.Choices = append(results.Choices, domain.ChoiceResult{Choice: choice, VoteCount: count})
		results.TotalVotes += count
	}

	return results, nil
}

// publishedQuestion resolves an id to a question the caller is allowed to
// see. Unknown ids and unpublished questions are indistinguishable.
func (s *pollQueryService) publishedQuestion(ctx context.Context, questionID string, now time.Time) (*domain.Question, error) {
	id, err := uuid.Parse(questionID)
	if err != nil {
		return nil, domain.ErrInvalidQuestionID
	}

	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !question.IsPublished(now) {
		return nil, domain.ErrQuestionNotFound
	}
	return question, nil
}

func (s *pollQueryService) choiceCounts(ctx context.Context, questionID uuid.UUID) (map[uuid.UUID]int64, error) {
	if s.resultCache != nil {
		counts, err := s.resultCache.GetCounts(ctx, questionID)
		if err == nil && counts != nil {
			return counts, nil
		}
	}

	counts, err := s.voteRepo.CountByChoice(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if s.resultCache != nil {
		// Best effort; a failed cache write never fails the read.
		_ = s.resultCache.SetCounts(ctx, questionID, counts)
	}

	return counts, nil
}
