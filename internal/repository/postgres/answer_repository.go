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

type answerRepository struct {
	db *sqlx.DB
}

func NewAnswerRepository(db *sqlx.DB) repository.AnswerRepository {
	return &answerRepository{db: db}
}

// CreateForPending runs the answer insert and the pending->answered status
// transition in one transaction. The guarded UPDATE loses against a
// concurrent answer that committed first, which rolls the insert back.
func (r *answerRepository) CreateForPending(ctx context.Context, answer *domain.Answer) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO answers (id, question_id, user_id, content, is_selected)
		VALUES ($1, $2, $3, $4, false)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, insert, answer.ID, answer.QuestionID, answer.UserID, answer.Content).
		Scan(&answer.CreatedAt)
	if err != nil {
		return err
	}

	transition := `
		UPDATE questions
		SET status = $1, answered_by = $2, answered_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND status = $4
	`
	result, err := tx.ExecContext(ctx, transition, domain.QuestionAnswered, answer.UserID, answer.QuestionID, domain.QuestionPending)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrQuestionAlreadyAnswered
	}

	return tx.Commit()
}

func (r *answerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
	var answer domain.Answer
	query := `
		SELECT id, question_id, user_id, content, is_selected, created_at
		FROM answers WHERE id = $1
	`
	err := r.db.GetContext(ctx, &answer, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnswerNotFound
		}
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*domain.Answer, error) {
	var answers []*domain.Answer
	query := `
		SELECT id, question_id, user_id, content, is_selected, created_at
		FROM answers
		WHERE question_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &answers, query, questionID)
	return answers, err
}

func (r *answerRepository) HasSelected(ctx context.Context, questionID uuid.UUID) (bool, error) {
	var selected bool
	query := `SELECT EXISTS (SELECT 1 FROM answers WHERE question_id = $1 AND is_selected = true)`
	err := r.db.GetContext(ctx, &selected, query, questionID)
	return selected, err
}

func (r *answerRepository) MarkUnselected(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE answers SET is_selected = false WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAnswerNotFound
	}
	return nil
}
