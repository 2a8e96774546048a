package domain

import (
	"time"

	"github.com/google/uuid"
)

type PointType string

const (
	PointEarn PointType = "EARN"
	PointUse  PointType = "USE"
)

// PointHistory is an append-only ledger entry. Entries are never updated or
// deleted; a profile's cached points column is derived from them.
type PointHistory struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Amount      int       `json:"amount" db:"amount"`
	Type        PointType `json:"type" db:"type"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// PointSummary is the fold of a user's ledger entries.
type PointSummary struct {
	TotalEarned int `json:"total_earned"`
	TotalUsed   int `json:"total_used"`
	TotalPoints int `json:"total_points"`
}
