package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storyweaver-server/internal/middleware"
	"storyweaver-server/internal/models"
)

func (h *APIHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "username, email and password are required"})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *APIHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "email and password are required"})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	loginsTotal.Inc()
	c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

func (h *APIHandler) updateSettings(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "preferredLanguage is required"})
		return
	}

	user, err := h.authService.UpdateSettings(c.Request.Context(), userID, req.PreferredLanguage, req.DarkMode)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, userResponse{User: user})
}
