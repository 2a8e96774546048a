package acceptance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
	"github.com/silverbridge24/silverbridge-backend/internal/infrastructure/events"
	"github.com/silverbridge24/silverbridge-backend/internal/repository"
)

// AcceptanceUseCase drives the terminal step of a question's lifecycle:
// the owner picks one answer, rates it and the answerer gets paid.
type AcceptanceUseCase struct {
	questionRepo   repository.QuestionRepository
	answerRepo     repository.AnswerRepository
	acceptanceRepo repository.AcceptanceRepository
	publisher      events.Publisher
	log            *logrus.Logger
}

func NewAcceptanceUseCase(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	acceptanceRepo repository.AcceptanceRepository,
	publisher events.Publisher,
	log *logrus.Logger,
) *AcceptanceUseCase {
	return &AcceptanceUseCase{
		questionRepo:   questionRepo,
		answerRepo:     answerRepo,
		acceptanceRepo: acceptanceRepo,
		publisher:      publisher,
		log:            log,
	}
}

// AcceptRequest selects a winning answer with a satisfaction rating.
type AcceptRequest struct {
	AnswerID     uuid.UUID           `json:"answer_id" binding:"required"`
	Satisfaction domain.Satisfaction `json:"satisfaction" binding:"required,satisfaction"`
}

// Accept completes the question, selects the answer and credits the
// answerer's ledger. Re-accepting the same answer is an idempotent no-op;
// accepting a different answer on a completed question fails.
func (uc *AcceptanceUseCase) Accept(ctx context.Context, ownerID, questionID uuid.UUID, req *AcceptRequest) error {
	if !req.Satisfaction.Valid() {
		return domain.ErrInvalidSatisfaction
	}

	question, err := uc.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}
	if !question.IsOwnedBy(ownerID) {
		return domain.ErrNotQuestionOwner
	}

	answer, err := uc.answerRepo.GetByID(ctx, req.AnswerID)
	if err != nil {
		return err
	}
	if answer.QuestionID != questionID {
		return domain.ErrAnswerNotFound
	}

	if question.IsCompleted() {
		if answer.IsSelected {
			return nil
		}
		return domain.ErrAlreadyAccepted
	}

	// AI answers complete the question but earn nothing.
	var credit *domain.PointHistory
	if answer.UserID != nil {
		credit = &domain.PointHistory{
			ID:          uuid.New(),
			UserID:      *answer.UserID,
			Amount:      req.Satisfaction.Points(),
			Type:        domain.PointEarn,
			Description: fmt.Sprintf("answer accepted: %s", question.Title),
		}
	}

	if err := uc.acceptanceRepo.Accept(ctx, questionID, req.AnswerID, req.Satisfaction, credit); err != nil {
		return err
	}

	uc.log.WithFields(logrus.Fields{
		"question_id":  questionID,
		"answer_id":    req.AnswerID,
		"satisfaction": req.Satisfaction,
	}).Info("answer accepted")

	uc.publish(ctx, events.ChangeEvent{
		Type:       events.QuestionCompleted,
		QuestionID: questionID.String(),
		AnswerID:   req.AnswerID.String(),
	})
	if credit != nil {
		uc.publish(ctx, events.ChangeEvent{
			Type:   events.PointsCredited,
			UserID: credit.UserID.String(),
		})
	}

	return nil
}

// Reject explicitly unselects an answer. Only legal while the question has
// no selected answer; rejecting after an accept would break the one-winner
// invariant.
func (uc *AcceptanceUseCase) Reject(ctx context.Context, ownerID, answerID uuid.UUID) error {
	answer, err := uc.answerRepo.GetByID(ctx, answerID)
	if err != nil {
		return err
	}

	question, err := uc.questionRepo.GetByID(ctx, answer.QuestionID)
	if err != nil {
		return err
	}
	if !question.IsOwnedBy(ownerID) {
		return domain.ErrNotQuestionOwner
	}

	selected, err := uc.answerRepo.HasSelected(ctx, question.ID)
	if err != nil {
		return err
	}
	if selected {
		return domain.ErrAlreadyAccepted
	}

	if err := uc.answerRepo.MarkUnselected(ctx, answerID); err != nil {
		return err
	}

	uc.publish(ctx, events.ChangeEvent{
		Type:       events.AnswerUpdated,
		QuestionID: question.ID.String(),
		AnswerID:   answerID.String(),
	})

	return nil
}

func (uc *AcceptanceUseCase) publish(ctx context.Context, event events.ChangeEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.log.WithError(err).WithField("event", event.Type).Warn("failed to publish change event")
	}
}
