package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
)

type AcceptanceRepository interface {
	// Accept marks the answer selected, completes the question with the
	// given satisfaction and appends the EARN ledger entry, all in one
	// transaction. credit is nil for AI answers, which earn nothing.
	// Returns domain.ErrAlreadyAccepted when the question was completed by
	// a concurrent accept; re-accepting the already selected answer is a
	// no-op success.
	Accept(ctx context.Context, questionID, answerID uuid.UUID, satisfaction domain.Satisfaction, credit *domain.PointHistory) error
}
