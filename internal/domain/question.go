package domain

import (
	"time"

	"github.com/google/uuid"
)

type QuestionStatus string

const (
	QuestionPending   QuestionStatus = "pending"
	QuestionAnswered  QuestionStatus = "answered"
	QuestionCompleted QuestionStatus = "completed"
)

// QuestionTarget says who the question is directed at. AI-directed questions
// are answered by the Gemini responder and never appear in the youth feed.
type QuestionTarget string

const (
	TargetYouth QuestionTarget = "YOUTH"
	TargetAI    QuestionTarget = "AI"
)

// Satisfaction is the three-level rating recorded when an answer is accepted.
type Satisfaction string

const (
	SatisfactionNeutral   Satisfaction = "neutral"
	SatisfactionGood      Satisfaction = "good"
	SatisfactionExcellent Satisfaction = "excellent"
)

func (s Satisfaction) Valid() bool {
	switch s {
	case SatisfactionNeutral, SatisfactionGood, SatisfactionExcellent:
		return true
	}
	return false
}

// Points returns the EARN amount credited to the answerer for this rating.
func (s Satisfaction) Points() int {
	switch s {
	case SatisfactionExcellent:
		return 150
	case SatisfactionGood:
		return 100
	default:
		return 50
	}
}

type Question struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	UserID       uuid.UUID      `json:"user_id" db:"user_id"`
	Title        string         `json:"title" db:"title"`
	Content      string         `json:"content" db:"content"`
	Status       QuestionStatus `json:"status" db:"status"`
	Target       QuestionTarget `json:"target" db:"target"`
	Satisfaction *Satisfaction  `json:"satisfaction" db:"satisfaction"`
	AnsweredBy   *uuid.UUID     `json:"answered_by,omitempty" db:"answered_by"`
	AnsweredAt   *time.Time     `json:"answered_at,omitempty" db:"answered_at"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

func (q *Question) IsCompleted() bool {
	return q.Status == QuestionCompleted
}

func (q *Question) IsOwnedBy(userID uuid.UUID) bool {
	return q.UserID == userID
}
