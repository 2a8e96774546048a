package answer

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
	"github.com/silverbridge24/silverbridge-backend/internal/infrastructure/events"
	"github.com/silverbridge24/silverbridge-backend/internal/repository"
)

type AnswerUseCase struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	profileRepo  repository.ProfileRepository
	publisher    events.Publisher
	log          *logrus.Logger
}

func NewAnswerUseCase(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	profileRepo repository.ProfileRepository,
	publisher events.Publisher,
	log *logrus.Logger,
) *AnswerUseCase {
	return &AnswerUseCase{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		profileRepo:  profileRepo,
		publisher:    publisher,
		log:          log,
	}
}

// SubmitRequest represents a youth's answer to a pending question.
type SubmitRequest struct {
	Content string `json:"content" binding:"required"`
}

// Submit checks every precondition server side; clients race each other and
// cannot be trusted to have seen fresh state. One answer wins per question:
// the first committed answer moves it out of pending and later submissions
// fail with ErrQuestionAlreadyAnswered.
func (uc *AnswerUseCase) Submit(ctx context.Context, authorID, questionID uuid.UUID, req *SubmitRequest) (*domain.Answer, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	question, err := uc.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	// Owners can never answer themselves, whatever the question status.
	if question.IsOwnedBy(authorID) {
		return nil, domain.ErrSelfAnswer
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if profile.Role != domain.RoleYouth {
		return nil, domain.ErrNotYouth
	}

	if question.Status != domain.QuestionPending {
		return nil, domain.ErrQuestionAlreadyAnswered
	}

	answer := &domain.Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		UserID:     &authorID,
		Content:    content,
	}
	// The repository re-checks the status inside the transaction; the
	// read above may be stale by the time we get here.
	if err := uc.answerRepo.CreateForPending(ctx, answer); err != nil {
		return nil, err
	}

	uc.publish(ctx, events.ChangeEvent{
		Type:       events.AnswerCreated,
		QuestionID: questionID.String(),
		AnswerID:   answer.ID.String(),
		UserID:     authorID.String(),
	})

	return answer, nil
}

func (uc *AnswerUseCase) publish(ctx context.Context, event events.ChangeEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.log.WithError(err).WithField("event", event.Type).Warn("failed to publish change event")
	}
}
