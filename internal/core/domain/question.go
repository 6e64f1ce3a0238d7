package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecentWindow is how far back a publish date may lie for the question
// to still count as recently published.
const RecentWindow = 3 * 24 * time.Hour

const (
	MaxQuestionTextLen = 280
	MaxChoiceTextLen   = 80
)

type Question struct {
	ID        uuid.UUID  `json:"id"`
	Text      string     `json:"text"`
	PublishAt time.Time  `json:"publish_at"`
	CloseAt   *time.Time `json:"close_at,omitempty"`
	Visible   bool       `json:"visible"`
	Choices   []Choice   `json:"choices"`
	CreatedAt time.Time  `json:"created_at"`
}

type Choice struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsPublished reports whether the question is visible to anyone at the
// given instant. Hidden questions are never published, whatever the dates.
func (q *Question) IsPublished(now time.Time) bool {
	return q.Visible && !now.Before(q.PublishAt)
}

// WasPublishedRecently reports whether the publish date falls within
// [now-RecentWindow, now]. Both ends inclusive; future dates are not recent.
func (q *Question) WasPublishedRecently(now time.Time) bool {
	if now.Before(q.PublishAt) {
		return false
	}
	return !q.PublishAt.Before(now.Add(-RecentWindow))
}

// CanVote reports whether a ballot may be accepted at the given instant.
// Voting opens exactly at PublishAt and, when a close date is set, closes
// exactly after CloseAt. Both boundary instants allow voting.
func (q *Question) CanVote(now time.Time) bool {
	if !q.IsPublished(now) {
		return false
	}
	if q.CloseAt == nil {
		return true
	}
	return !now.After(*q.CloseAt)
}

// ChoiceByID returns the question's choice with the given id, or nil.
func (q *Question) ChoiceByID(id uuid.UUID) *Choice {
	for i := range q.Choices {
		if q.Choices[i].ID == id {
			return &q.Choices[i]
		}
	}
	return nil
}
