package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a user's current selection for a question. QuestionID is
// denormalized so the store can hold a uniqueness constraint on
// (user_id, question_id); a repeat vote moves ChoiceID in place.
type Vote struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	QuestionID uuid.UUID `json:"question_id"`
	ChoiceID   uuid.UUID `json:"choice_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ChoiceResult pairs a choice with its derived vote count.
type ChoiceResult struct {
	Choice    Choice `json:"choice"`
	VoteCount int64  `json:"vote_count"`
}
