package points

import (
	"context"

	"github.com/google/uuid"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
	"github.com/silverbridge24/silverbridge-backend/internal/repository"
)

type PointsUseCase struct {
	pointRepo repository.PointRepository
}

func NewPointsUseCase(pointRepo repository.PointRepository) *PointsUseCase {
	return &PointsUseCase{pointRepo: pointRepo}
}

// Credit appends a ledger entry. Acceptance credits go through the
// acceptance transaction instead; this path serves out-of-band adjustments
// and point spending.
func (uc *PointsUseCase) Credit(ctx context.Context, userID uuid.UUID, amount int, typ domain.PointType, description string) (*domain.PointHistory, error) {
	entry := &domain.PointHistory{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Type:        typ,
		Description: description,
	}
	if err := uc.pointRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// History returns the user's ledger, newest first.
func (uc *PointsUseCase) History(ctx context.Context, userID uuid.UUID) ([]*domain.PointHistory, error) {
	return uc.pointRepo.ListByUser(ctx, userID)
}

// Summary folds the ledger. The ledger is authoritative; the cached
// profiles.points column is a convenience.
func (uc *PointsUseCase) Summary(ctx context.Context, userID uuid.UUID) (*domain.PointSummary, error) {
	return uc.pointRepo.SummarizeByUser(ctx, userID)
}
