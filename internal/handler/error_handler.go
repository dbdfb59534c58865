package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storyweaver-server/internal/models"
)

// handleServiceError maps service errors to HTTP statuses. Validation
// messages pass through verbatim; everything unexpected collapses to a
// generic 500 so internals never leak.
func handleServiceError(c *gin.Context, err error, logger *zap.Logger) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "Username already taken"})
	case errors.Is(err, models.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "Email already registered"})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
	case errors.Is(err, models.ErrUnauthorized),
		errors.Is(err, models.ErrTokenInvalid),
		errors.Is(err, models.ErrTokenExpired),
		errors.Is(err, models.ErrTokenMalformed):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, models.ErrStoryNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Story not found"})
	case errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
	case errors.Is(err, models.ErrUpstream):
		logger.Error("AI upstream failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "AI service is temporarily unavailable"})
	default:
		logger.Error("Unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}
