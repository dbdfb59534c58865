// Package handler exposes the HTTP JSON API: auth, story lifecycle and the
// AI-assisted writing endpoints.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storyweaver-server/internal/authutils"
	"storyweaver-server/internal/middleware"
	"storyweaver-server/internal/service"
)

// APIHandler handles HTTP requests for the story server.
type APIHandler struct {
	authService   service.AuthService
	storyService  service.StoryService
	assistService service.AssistService
	verifier      *authutils.JWTVerifier
	pingDB        func(ctx context.Context) error
	logger        *zap.Logger
}

// NewAPIHandler creates a new APIHandler. pingDB backs the health endpoint
// and may be nil when no database check is wanted.
func NewAPIHandler(
	authService service.AuthService,
	storyService service.StoryService,
	assistService service.AssistService,
	logger *zap.Logger,
	jwtSecret string,
	pingDB func(ctx context.Context) error,
) *APIHandler {
	verifier, err := authutils.NewJWTVerifier(jwtSecret, logger)
	if err != nil {
		logger.Fatal("Failed to create JWT Verifier", zap.Error(err))
	}

	return &APIHandler{
		authService:   authService,
		storyService:  storyService,
		assistService: assistService,
		verifier:      verifier,
		pingDB:        pingDB,
		logger:        logger.Named("APIHandler"),
	}
}

// RegisterRoutes registers all API routes on the router.
func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	authRequired := middleware.Auth(h.verifier.VerifyToken, h.logger)

	router.GET("/health", h.health)
	router.HEAD("/health", h.health)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.PUT("/settings", authRequired, h.updateSettings)
	}

	storiesGroup := router.Group("/stories", authRequired)
	{
		storiesGroup.POST("", h.createStory)
		storiesGroup.GET("", h.listStories)
		storiesGroup.GET("/last-active/resume", h.resumeLastActive)
		storiesGroup.GET("/:id", h.getStory)
		storiesGroup.PUT("/:id", h.updateStory)
		storiesGroup.DELETE("/:id", h.deleteStory)
		storiesGroup.PUT("/:id/draft", h.saveDraft)
		storiesGroup.POST("/:id/scenes", h.commitScene)
	}

	assistGroup := router.Group("/", authRequired)
	{
		assistGroup.POST("/detect-language", h.detectLanguage)
		assistGroup.POST("/grammar-check", h.grammarCheck)
		assistGroup.POST("/generate-choices", h.generateChoices)
		assistGroup.POST("/continue-scene", h.continueScene)
	}
}

func (h *APIHandler) health(c *gin.Context) {
	if h.pingDB != nil {
		if err := h.pingDB(c.Request.Context()); err != nil {
			h.logger.Error("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
