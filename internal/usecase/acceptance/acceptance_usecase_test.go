package acceptance

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
	"github.com/silverbridge24/silverbridge-backend/internal/infrastructure/events"
	"github.com/silverbridge24/silverbridge-backend/internal/repository/postgres"
)

type fakePublisher struct {
	published []events.ChangeEvent
}

func (p *fakePublisher) Publish(_ context.Context, event events.ChangeEvent) error {
	p.published = append(p.published, event)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newAcceptanceTest(t *testing.T) (*AcceptanceUseCase, sqlmock.Sqlmock, *fakePublisher) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sdb := sqlx.NewDb(db, "sqlmock")
	publisher := &fakePublisher{}
	uc := NewAcceptanceUseCase(
		postgres.NewQuestionRepository(sdb),
		postgres.NewAnswerRepository(sdb),
		postgres.NewAcceptanceRepository(sdb),
		publisher,
		quietLogger(),
	)
	return uc, mock, publisher
}

var questionColumns = []string{
	"id", "user_id", "title", "content", "status", "target",
	"satisfaction", "answered_by", "answered_at", "created_at",
}

var answerColumns = []string{
	"id", "question_id", "user_id", "content", "is_selected", "created_at",
}

func expectQuestion(mock sqlmock.Sqlmock, questionID, ownerID uuid.UUID, status domain.QuestionStatus) {
	mock.ExpectQuery("SELECT id, user_id, title, content, status, target, satisfaction").
		WithArgs(questionID).
		WillReturnRows(sqlmock.NewRows(questionColumns).
			AddRow(questionID.String(), ownerID.String(), "How do I back up photos", "My phone is full", string(status), "YOUTH", nil, nil, nil, time.Now()))
}

func expectAnswer(mock sqlmock.Sqlmock, answerID, questionID uuid.UUID, authorID *uuid.UUID, selected bool) {
	var author interface{}
	if authorID != nil {
		author = authorID.String()
	}
	mock.ExpectQuery("SELECT id, question_id, user_id, content, is_selected").
		WithArgs(answerID).
		WillReturnRows(sqlmock.NewRows(answerColumns).
			AddRow(answerID.String(), questionID.String(), author, "Open the gallery app", selected, time.Now()))
}

func TestAcceptanceUseCase_Accept(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	authorID := uuid.New()
	questionID := uuid.New()
	answerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		uc, mock, publisher := newAcceptanceTest(t)

		expectQuestion(mock, questionID, ownerID, domain.QuestionAnswered)
		expectAnswer(mock, answerID, questionID, &authorID, false)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM questions WHERE id = (.+) FOR UPDATE").
			WithArgs(questionID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("answered"))
		mock.ExpectExec("UPDATE answers SET is_selected = true").
			WithArgs(answerID, questionID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE questions SET status").
			WithArgs(domain.QuestionCompleted, domain.SatisfactionGood, questionID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO point_histories").
			WithArgs(sqlmock.AnyArg(), authorID, 100, domain.PointEarn, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec("UPDATE profiles SET points = points").
			WithArgs(100, authorID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := uc.Accept(ctx, ownerID, questionID, &AcceptRequest{
			AnswerID:     answerID,
			Satisfaction: domain.SatisfactionGood,
		})
		require.NoError(t, err)

		require.Len(t, publisher.published, 2)
		assert.Equal(t, events.QuestionCompleted, publisher.published[0].Type)
		assert.Equal(t, events.PointsCredited, publisher.published[1].Type)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SatisfactionScalesCredit", func(t *testing.T) {
		uc, mock, _ := newAcceptanceTest(t)

		expectQuestion(mock, questionID, ownerID, domain.QuestionAnswered)
		expectAnswer(mock, answerID, questionID, &authorID, false)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM questions WHERE id = (.+) FOR UPDATE").
			WithArgs(questionID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("answered"))
		mock.ExpectExec("UPDATE answers SET is_selected = true").
			WithArgs(answerID, questionID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE questions SET status").
			WithArgs(domain.QuestionCompleted, domain.SatisfactionExcellent, questionID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO point_histories").
			WithArgs(sqlmock.AnyArg(), authorID, 150, domain.PointEarn, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec("UPDATE profiles SET points = points").
			WithArgs(150, authorID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := uc.Accept(ctx, ownerID, questionID, &AcceptRequest{
			AnswerID:     answerID,
			Satisfaction: domain.SatisfactionExcellent,
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SecondAcceptFails", func(t *testing.T) {
		uc, mock, publisher := newAcceptanceTest(t)
		secondAnswerID := uuid.New()

		expectQuestion(mock, questionID, ownerID, domain.QuestionCompleted)
		expectAnswer(mock, secondAnswerID, questionID, &authorID, false)

		err := uc.Accept(ctx, ownerID, questionID, &AcceptRequest{
			AnswerID:     secondAnswerID,
			Satisfaction: domain.SatisfactionGood,
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyAccepted)
		assert.Empty(t, publisher.published)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("IdenticalRetryIsNoOp", func(t *testing.T) {
		uc, mock, publisher := newAcceptanceTest(t)

		expectQuestion(mock, questionID, ownerID, domain.QuestionCompleted)
		expectAnswer(mock, answerID, questionID, &authorID, true)

		err := uc.Accept(ctx, ownerID, questionID, &AcceptRequest{
			AnswerID:     answerID,
			Satisfaction: domain.SatisfactionGood,
		})
		require.NoError(t, err)
		assert.Empty(t, publisher.published)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConcurrentAcceptLosesUnderLock", func(t *testing.T) {
		uc, mock, _ := newAcceptanceTest(t)
		secondAnswerID := uuid.New()

		// The stale read still sees the question as answered; the FOR
		// UPDATE re-check inside the transaction sees the winner.
		expectQuestion(mock, questionID, ownerID, domain.QuestionAnswered)
		expectAnswer(mock, secondAnswerID, questionID, &authorID, false)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM questions WHERE id = (.+) FOR UPDATE").
			WithArgs(questionID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("completed"))
		mock.ExpectQuery("SELECT is_selected FROM answers").
			WithArgs(secondAnswerID).
			WillReturnRows(sqlmock.NewRows([]string{"is_selected"}).AddRow(false))
		mock.ExpectRollback()

		err := uc.Accept(ctx, ownerID, questionID, &AcceptRequest{
			AnswerID:     secondAnswerID,
			Satisfaction: domain.SatisfactionNeutral,
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyAccepted)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotOwner", func(t *testing.T) {
		uc, mock, _ := newAcceptanceTest(t)

		expectQuestion(mock, questionID, ownerID, domain.QuestionAnswered)

		err := uc.Accept(ctx, uuid.New(), questionID, &AcceptRequest{
			AnswerID:     answerID,
			Satisfaction: domain.SatisfactionGood,
		})
		assert.ErrorIs(t, err, domain.ErrNotQuestionOwner)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AnswerFromOtherQuestion", func(t *testing.T) {
		uc, mock, _ := newAcceptanceTest(t)
		otherQuestionID := uuid.New()

		expectQuestion(mock, questionID, ownerID, domain.QuestionAnswered)
		expectAnswer(mock, answerID, otherQuestionID, &authorID, false)

		err := uc.Accept(ctx, ownerID, questionID, &AcceptRequest{
			AnswerID:     answerID,
			Satisfaction: domain.SatisfactionGood,
		})
		assert.ErrorIs(t, err, domain.ErrAnswerNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AIAnswerEarnsNothing", func(t *testing.T) {
		uc, mock, publisher := newAcceptanceTest(t)

		expectQuestion(mock, questionID, ownerID, domain.QuestionAnswered)
		expectAnswer(mock, answerID, questionID, nil, false)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM questions WHERE id = (.+) FOR UPDATE").
			WithArgs(questionID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("answered"))
		mock.ExpectExec("UPDATE answers SET is_selected = true").
			WithArgs(answerID, questionID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE questions SET status").
			WithArgs(domain.QuestionCompleted, domain.SatisfactionGood, questionID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := uc.Accept(ctx, ownerID, questionID, &AcceptRequest{
			AnswerID:     answerID,
			Satisfaction: domain.SatisfactionGood,
		})
		require.NoError(t, err)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, events.QuestionCompleted, publisher.published[0].Type)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAcceptanceUseCase_Reject(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	authorID := uuid.New()
	questionID := uuid.New()
	answerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		uc, mock, publisher := newAcceptanceTest(t)

		expectAnswer(mock, answerID, questionID, &authorID, false)
		expectQuestion(mock, questionID, ownerID, domain.QuestionAnswered)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(questionID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("UPDATE answers SET is_selected = false").
			WithArgs(answerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := uc.Reject(ctx, ownerID, answerID)
		require.NoError(t, err)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, events.AnswerUpdated, publisher.published[0].Type)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("BlockedWhileAnswerSelected", func(t *testing.T) {
		uc, mock, _ := newAcceptanceTest(t)

		expectAnswer(mock, answerID, questionID, &authorID, false)
		expectQuestion(mock, questionID, ownerID, domain.QuestionCompleted)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(questionID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := uc.Reject(ctx, ownerID, answerID)
		assert.ErrorIs(t, err, domain.ErrAlreadyAccepted)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotOwner", func(t *testing.T) {
		uc, mock, _ := newAcceptanceTest(t)

		expectAnswer(mock, answerID, questionID, &authorID, false)
		expectQuestion(mock, questionID, ownerID, domain.QuestionAnswered)

		err := uc.Reject(ctx, uuid.New(), answerID)
		assert.ErrorIs(t, err, domain.ErrNotQuestionOwner)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
