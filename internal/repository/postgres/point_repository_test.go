package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
	"github.com/silverbridge24/silverbridge-backend/internal/repository"
)

func newPointRepoTest(t *testing.T) (repository.PointRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPointRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestPointRepository_Create(t *testing.T) {
	repo, mock := newPointRepoTest(t)
	userID := uuid.New()

	entry := &domain.PointHistory{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      100,
		Type:        domain.PointEarn,
		Description: "answer accepted: How do I enlarge text",
	}

	mock.ExpectQuery("INSERT INTO point_histories").
		WithArgs(entry.ID, userID, 100, domain.PointEarn, entry.Description).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	require.NoError(t, repo.Create(context.Background(), entry))
	assert.False(t, entry.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPointRepository_ListByUser(t *testing.T) {
	repo, mock := newPointRepoTest(t)
	userID := uuid.New()

	mock.ExpectQuery("SELECT id, user_id, amount, type, description, created_at").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "type", "description", "created_at"}).
			AddRow(uuid.New().String(), userID.String(), 100, "EARN", "answer accepted: t", time.Now()).
			AddRow(uuid.New().String(), userID.String(), 50, "USE", "gift card", time.Now()))

	entries, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.PointEarn, entries[0].Type)
	assert.Equal(t, domain.PointUse, entries[1].Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPointRepository_SummarizeByUser(t *testing.T) {
	userID := uuid.New()

	t.Run("FoldsLedger", func(t *testing.T) {
		repo, mock := newPointRepoTest(t)

		mock.ExpectQuery("SELECT amount, type FROM point_histories").
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"amount", "type"}).
				AddRow(100, "EARN").
				AddRow(50, "USE").
				AddRow(30, "EARN"))

		summary, err := repo.SummarizeByUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, 130, summary.TotalEarned)
		assert.Equal(t, 50, summary.TotalUsed)
		assert.Equal(t, 80, summary.TotalPoints)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyLedger", func(t *testing.T) {
		repo, mock := newPointRepoTest(t)

		mock.ExpectQuery("SELECT amount, type FROM point_histories").
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"amount", "type"}))

		summary, err := repo.SummarizeByUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Zero(t, summary.TotalEarned)
		assert.Zero(t, summary.TotalUsed)
		assert.Zero(t, summary.TotalPoints)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
