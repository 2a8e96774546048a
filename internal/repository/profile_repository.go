package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
}
