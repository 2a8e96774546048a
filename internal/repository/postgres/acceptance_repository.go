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

type acceptanceRepository struct {
	db *sqlx.DB
}

func NewAcceptanceRepository(db *sqlx.DB) repository.AcceptanceRepository {
	return &acceptanceRepository{db: db}
}

// Accept performs the whole acceptance as one transaction: lock the question
// row, re-check the status under the lock, select the answer, complete the
// question and append the ledger entry. Either everything commits or nothing
// does.
func (r *acceptanceRepository) Accept(ctx context.Context, questionID, answerID uuid.UUID, satisfaction domain.Satisfaction, credit *domain.PointHistory) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status domain.QuestionStatus
	err = tx.GetContext(ctx, &status, `SELECT status FROM questions WHERE id = $1 FOR UPDATE`, questionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrQuestionNotFound
		}
		return err
	}

	if status == domain.QuestionCompleted {
		// Identical retry of a committed accept is a no-op; a divergent
		// second accept is rejected.
		var selected bool
		if err := tx.GetContext(ctx, &selected, `SELECT is_selected FROM answers WHERE id = $1`, answerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrAnswerNotFound
			}
			return err
		}
		if selected {
			return nil
		}
		return domain.ErrAlreadyAccepted
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE answers SET is_selected = true WHERE id = $1 AND question_id = $2`,
		answerID, questionID,
	)
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

	_, err = tx.ExecContext(ctx,
		`UPDATE questions SET status = $1, satisfaction = $2 WHERE id = $3`,
		domain.QuestionCompleted, satisfaction, questionID,
	)
	if err != nil {
		return err
	}

	if credit != nil {
		insert := `
			INSERT INTO point_histories (id, user_id, amount, type, description)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`
		err = tx.QueryRowContext(ctx, insert, credit.ID, credit.UserID, credit.Amount, credit.Type, credit.Description).
			Scan(&credit.CreatedAt)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE profiles SET points = points + $1 WHERE user_id = $2`,
			credit.Amount, credit.UserID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
