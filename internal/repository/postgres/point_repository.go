package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
	"github.com/silverbridge24/silverbridge-backend/internal/repository"
)

type pointRepository struct {
	db *sqlx.DB
}

func NewPointRepository(db *sqlx.DB) repository.PointRepository {
	return &pointRepository{db: db}
}

func (r *pointRepository) Create(ctx context.Context, entry *domain.PointHistory) error {
	query := `
		INSERT INTO point_histories (id, user_id, amount, type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		entry.ID, entry.UserID, entry.Amount, entry.Type, entry.Description,
	).Scan(&entry.CreatedAt)
}

func (r *pointRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PointHistory, error) {
	var entries []*domain.PointHistory
	query := `
		SELECT id, user_id, amount, type, description, created_at
		FROM point_histories
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &entries, query, userID)
	return entries, err
}

// SummarizeByUser folds every ledger entry for the user. EARN amounts add to
// earned, USE amounts to used; the balance is their difference.
func (r *pointRepository) SummarizeByUser(ctx context.Context, userID uuid.UUID) (*domain.PointSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT amount, type FROM point_histories WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &domain.PointSummary{}
	for rows.Next() {
		var amount int
		var typ domain.PointType
		if err := rows.Scan(&amount, &typ); err != nil {
			return nil, err
		}
		switch typ {
		case domain.PointEarn:
			summary.TotalEarned += amount
		case domain.PointUse:
			summary.TotalUsed += amount
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary.TotalPoints = summary.TotalEarned - summary.TotalUsed
	return summary, nil
}
