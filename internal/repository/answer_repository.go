package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
)

type AnswerRepository interface {
	// CreateForPending inserts the answer and moves its question from
	// pending to answered in one transaction. Returns
	// domain.ErrQuestionAlreadyAnswered when a concurrent answer won the
	// status transition first.
	CreateForPending(ctx context.Context, answer *domain.Answer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error)
	// ListByQuestion returns a question's answers, newest first.
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*domain.Answer, error)
	HasSelected(ctx context.Context, questionID uuid.UUID) (bool, error)
	MarkUnselected(ctx context.Context, id uuid.UUID) error
}
