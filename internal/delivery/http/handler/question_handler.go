package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silverbridge24/silverbridge-backend/internal/usecase/question"
)

type QuestionHandler struct {
	questionUseCase *question.QuestionUseCase
}

func NewQuestionHandler(questionUseCase *question.QuestionUseCase) *QuestionHandler {
	return &QuestionHandler{
		questionUseCase: questionUseCase,
	}
}

// Create handles POST /questions
// @Summary Ask a question
// @Tags questions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body question.CreateRequest true "Question"
// @Success 201 {object} domain.Question
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req question.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.questionUseCase.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListMine handles GET /questions/mine
func (h *QuestionHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	questions, err := h.questionUseCase.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// ListPending handles GET /questions/pending, the youth browsing feed.
func (h *QuestionHandler) ListPending(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	questions, err := h.questionUseCase.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// Answers handles GET /questions/:id/answers
func (h *QuestionHandler) Answers(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	questionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	answers, err := h.questionUseCase.Answers(c.Request.Context(), questionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answers": answers})
}
