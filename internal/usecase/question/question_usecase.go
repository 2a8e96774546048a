package question

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
	"github.com/silverbridge24/silverbridge-backend/internal/infrastructure/events"
	"github.com/silverbridge24/silverbridge-backend/internal/repository"
)

// pendingPageSize caps the youth browsing feed.
const pendingPageSize = 50

const aiResponderTimeout = 60 * time.Second

// Responder produces an answer for AI-directed questions.
type Responder interface {
	Answer(ctx context.Context, title, content string) (string, error)
}

type QuestionUseCase struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	profileRepo  repository.ProfileRepository
	responder    Responder
	publisher    events.Publisher
	log          *logrus.Logger
}

func NewQuestionUseCase(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	profileRepo repository.ProfileRepository,
	responder Responder,
	publisher events.Publisher,
	log *logrus.Logger,
) *QuestionUseCase {
	return &QuestionUseCase{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		profileRepo:  profileRepo,
		responder:    responder,
		publisher:    publisher,
		log:          log,
	}
}

// CreateRequest represents a new question from a senior account.
type CreateRequest struct {
	Title   string                `json:"title" binding:"required"`
	Content string                `json:"content" binding:"required"`
	Target  domain.QuestionTarget `json:"target"`
}

func (uc *QuestionUseCase) Create(ctx context.Context, ownerID uuid.UUID, req *CreateRequest) (*domain.Question, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if profile.Role != domain.RoleSenior {
		return nil, domain.ErrNotSenior
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	target := req.Target
	if target != domain.TargetAI {
		target = domain.TargetYouth
	}

	question := &domain.Question{
		ID:      uuid.New(),
		UserID:  ownerID,
		Title:   title,
		Content: content,
		Status:  domain.QuestionPending,
		Target:  target,
	}
	if err := uc.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}

	uc.publish(ctx, events.ChangeEvent{
		Type:       events.QuestionCreated,
		QuestionID: question.ID.String(),
		UserID:     ownerID.String(),
	})

	if target == domain.TargetAI && uc.responder != nil {
		go uc.answerWithAI(question)
	}

	return question, nil
}

// ListMine returns the owner's questions, newest first.
func (uc *QuestionUseCase) ListMine(ctx context.Context, ownerID uuid.UUID) ([]*domain.Question, error) {
	return uc.questionRepo.ListByOwner(ctx, ownerID)
}

// ListPending returns the youth browsing feed: pending, youth-directed
// questions, newest first, capped at a fixed page size.
func (uc *QuestionUseCase) ListPending(ctx context.Context) ([]*domain.Question, error) {
	return uc.questionRepo.ListPending(ctx, pendingPageSize)
}

// Answers returns a question's answers, newest first.
func (uc *QuestionUseCase) Answers(ctx context.Context, questionID uuid.UUID) ([]*domain.Answer, error) {
	if _, err := uc.questionRepo.GetByID(ctx, questionID); err != nil {
		return nil, err
	}
	return uc.answerRepo.ListByQuestion(ctx, questionID)
}

// answerWithAI generates and stores the responder's answer off the request
// path. The question stays pending if generation fails; the owner can delete
// and re-ask.
func (uc *QuestionUseCase) answerWithAI(question *domain.Question) {
	ctx, cancel := context.WithTimeout(context.Background(), aiResponderTimeout)
	defer cancel()

	content, err := uc.responder.Answer(ctx, question.Title, question.Content)
	if err != nil {
		uc.log.WithError(err).WithField("question_id", question.ID).Warn("ai responder failed")
		return
	}

	answer := &domain.Answer{
		ID:         uuid.New(),
		QuestionID: question.ID,
		UserID:     nil,
		Content:    content,
	}
	if err := uc.answerRepo.CreateForPending(ctx, answer); err != nil {
		if !errors.Is(err, domain.ErrQuestionAlreadyAnswered) {
			uc.log.WithError(err).WithField("question_id", question.ID).Error("failed to store ai answer")
		}
		return
	}

	uc.publish(ctx, events.ChangeEvent{
		Type:       events.AnswerCreated,
		QuestionID: question.ID.String(),
		AnswerID:   answer.ID.String(),
	})
}

func (uc *QuestionUseCase) publish(ctx context.Context, event events.ChangeEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.log.WithError(err).WithField("event", event.Type).Warn("failed to publish change event")
	}
}
