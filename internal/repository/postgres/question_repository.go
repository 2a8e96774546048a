package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
	"github.com/silverbridge24/silverbridge-backend/internal/repository"
)

type questionRepository struct {
	db *sqlx.DB
}

func NewQuestionRepository(db *sqlx.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *domain.Question) error {
	query := `
		INSERT INTO questions (id, user_id, title, content, status, target)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		question.ID, question.UserID, question.Title, question.Content,
		question.Status, question.Target,
	).Scan(&question.CreatedAt)
}

func (r *questionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	var question domain.Question
	query := `
		SELECT id, user_id, title, content, status, target, satisfaction,
		       answered_by, answered_at, created_at
		FROM questions WHERE id = $1
	`
	err := r.db.GetContext(ctx, &question, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Question, error) {
	var questions []*domain.Question
	query := `
		SELECT id, user_id, title, content, status, target, satisfaction,
		       answered_by, answered_at, created_at
		FROM questions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &questions, query, ownerID)
	return questions, err
}

func (r *questionRepository) ListPending(ctx context.Context, limit int) ([]*domain.Question, error) {
	var questions []*domain.Question
	query := `
		SELECT id, user_id, title, content, status, target, satisfaction,
		       answered_by, answered_at, created_at
		FROM questions
		WHERE status = $1 AND target = $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	err := r.db.SelectContext(ctx, &questions, query, domain.QuestionPending, domain.TargetYouth, limit)
	return questions, err
}
