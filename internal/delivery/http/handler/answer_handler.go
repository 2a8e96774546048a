package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silverbridge24/silverbridge-backend/internal/usecase/acceptance"
	"github.com/silverbridge24/silverbridge-backend/internal/usecase/answer"
)

type AnswerHandler struct {
	answerUseCase     *answer.AnswerUseCase
	acceptanceUseCase *acceptance.AcceptanceUseCase
}

func NewAnswerHandler(
	answerUseCase *answer.AnswerUseCase,
	acceptanceUseCase *acceptance.AcceptanceUseCase,
) *AnswerHandler {
	return &AnswerHandler{
		answerUseCase:     answerUseCase,
		acceptanceUseCase: acceptanceUseCase,
	}
}

// Submit handles POST /questions/:id/answers
// @Summary Answer a pending question
// @Tags answers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body answer.SubmitRequest true "Answer"
// @Success 201 {object} domain.Answer
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /questions/{id}/answers [post]
func (h *AnswerHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	questionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req answer.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.answerUseCase.Submit(c.Request.Context(), userID, questionID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Accept handles POST /questions/:id/accept
// @Summary Accept an answer with a satisfaction rating
// @Tags answers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body acceptance.AcceptRequest true "Winning answer and rating"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /questions/{id}/accept [post]
func (h *AnswerHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	questionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req acceptance.AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.acceptanceUseCase.Accept(c.Request.Context(), userID, questionID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "answer accepted"})
}

// Reject handles POST /answers/:id/reject
func (h *AnswerHandler) Reject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	answerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.acceptanceUseCase.Reject(c.Request.Context(), userID, answerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "answer rejected"})
}
