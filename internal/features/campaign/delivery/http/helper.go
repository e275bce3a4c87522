package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stakeburn-backend/internal/features/campaign/models"
	"stakeburn-backend/internal/platform/token"
)

// respondError maps engine sentinel errors to HTTP statuses. The error
// string is always included so callers get the machine-readable reason.
func respondError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, models.ErrCampaignNotFound),
		errors.Is(err, models.ErrParticipantNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidState),
		errors.Is(err, models.ErrAlreadyDone),
		errors.Is(err, models.ErrReentrantCall):
		return http.StatusConflict
	case errors.Is(err, models.ErrCapacityExceeded),
		errors.Is(err, token.ErrInsufficientAllowance),
		errors.Is(err, token.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrProtectedToken):
		return http.StatusForbidden
	case errors.Is(err, models.ErrEnginePaused):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
