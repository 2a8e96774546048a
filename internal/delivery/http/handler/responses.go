package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/silverbridge24/silverbridge-backend/internal/domain"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// respondError maps domain sentinels to HTTP statuses. Everything here is a
// user-visible, non-fatal notification; unknown errors become an opaque 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrInvalidSatisfaction),
		errors.Is(err, domain.ErrInvalidSurface):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, domain.ErrRoleMismatch),
		errors.Is(err, domain.ErrNotSenior),
		errors.Is(err, domain.ErrNotYouth),
		errors.Is(err, domain.ErrSelfAnswer),
		errors.Is(err, domain.ErrNotQuestionOwner):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrAnswerNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrQuestionAlreadyAnswered),
		errors.Is(err, domain.ErrAlreadyAccepted):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, domain.ErrProfileCreation):
		status = http.StatusInternalServerError
		message = err.Error()
	}

	c.JSON(status, ErrorResponse{Error: message})
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID path parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
