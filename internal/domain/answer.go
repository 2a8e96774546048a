package domain

import (
	"time"

	"github.com/google/uuid"
)

// Answer is one reply to a question. UserID is nil for answers produced by
// the AI responder; those never earn points.
type Answer struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	QuestionID uuid.UUID  `json:"question_id" db:"question_id"`
	UserID     *uuid.UUID `json:"user_id" db:"user_id"`
	Content    string     `json:"content" db:"content"`
	IsSelected bool       `json:"is_selected" db:"is_selected"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

func (a *Answer) IsAI() bool {
	return a.UserID == nil
}

func (a *Answer) IsAuthoredBy(userID uuid.UUID) bool {
	return a.UserID != nil && *a.UserID == userID
}
