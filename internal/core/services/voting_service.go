package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/polls/internal/core/domain"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

type votingService struct {
	questionRepo ports.QuestionRepository
	voteRepo     ports.VoteRepository
	resultCache  ports.ResultCache
}

func NewVotingService(questionRepo ports.QuestionRepository, voteRepo ports.VoteRepository, resultCache ports.ResultCache) ports.VotingService {
	return &votingService{
		questionRepo: questionRepo,
		voteRepo:     voteRepo,
		resultCache:  resultCache,
	}
}

func (s *votingService) CastVote(ctx context.Context, input ports.CastVoteInput) error {
	question, err := s.questionRepo.GetByID(ctx, input.QuestionID)
	if err != nil {
		return err
	}
	if !question.IsPublished(input.Now) {
		return domain.ErrQuestionNotFound
	}

	// The open/close window is enforced here, not only in the handlers:
	// a request arriving after the poll closed must be rejected even if
	// the form was rendered while voting was still open.
	if !question.CanVote(input.Now) {
		return domain.ErrVotingClosed
	}

	if input.ChoiceID == uuid.Nil || question.ChoiceByID(input.ChoiceID) == nil {
		return domain.ErrInvalidChoice
	}

	vote := &domain.Vote{
		ID:         uuid.New(),
		UserID:     input.UserID,
		QuestionID: input.QuestionID,
		ChoiceID:   input.ChoiceID,
		CreatedAt:  input.Now,
	}

	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		return err
	}

	if s.resultCache != nil {
		_ = s.resultCache.Invalidate(ctx, input.QuestionID)
	}

	return nil
}
