package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
)

type PointRepository interface {
	// Create appends a ledger entry. Entries are never updated or deleted.
	Create(ctx context.Context, entry *domain.PointHistory) error
	// ListByUser returns the user's ledger, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PointHistory, error)
	// SummarizeByUser folds the full ledger; the ledger is authoritative
	// over the cached profiles.points column.
	SummarizeByUser(ctx context.Context, userID uuid.UUID) (*domain.PointSummary, error)
}
