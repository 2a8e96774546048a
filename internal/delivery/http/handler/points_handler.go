package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silverbridge24/silverbridge-backend/internal/usecase/points"
)

type PointsHandler struct {
	pointsUseCase *points.PointsUseCase
}

func NewPointsHandler(pointsUseCase *points.PointsUseCase) *PointsHandler {
	return &PointsHandler{
		pointsUseCase: pointsUseCase,
	}
}

// History handles GET /points/history
func (h *PointsHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.pointsUseCase.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// Summary handles GET /points/summary
// @Summary Get point totals
// @Tags points
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.PointSummary
// @Failure 401 {object} ErrorResponse
// @Router /points/summary [get]
func (h *PointsHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.pointsUseCase.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
