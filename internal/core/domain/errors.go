package domain

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrInvalidQuestionID = errors.New("invalid question id")
	ErrInvalidChoice     = errors.New("invalid choice for this question")
	ErrVotingClosed      = errors.New("voting is closed for this question")
	ErrVoteNotFound      = errors.New("user did not vote on this question")
	ErrInternal          = errors.New("internal server error")
)
