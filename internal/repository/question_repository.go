package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *domain.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	// ListByOwner returns the owner's questions, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Question, error)
	// ListPending returns youth-directed pending questions, newest first,
	// capped at limit.
	ListPending(ctx context.Context, limit int) ([]*domain.Question, error)
}
