package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
	"github.com/silverbridge24/silverbridge-backend/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, email, username, role, points)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.UserID, profile.Email, profile.Username,
		profile.Role, profile.Points,
	).Scan(&profile.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			// Two sessions raced the lazy create; the winner's row stands.
			return domain.ErrProfileExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT id, user_id, email, username, role, points, created_at
		FROM profiles WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT id, user_id, email, username, role, points, created_at
		FROM profiles WHERE email = $1
	`
	err := r.db.GetContext(ctx, &profile, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
