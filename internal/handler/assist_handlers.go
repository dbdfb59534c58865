package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storyweaver-server/internal/models"
)

func (h *APIHandler) detectLanguage(c *gin.Context) {
	var req detectLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	det := h.assistService.DetectLanguage(req.Text)
	c.JSON(http.StatusOK, detectLanguageResponse{
		LanguageCode: det.Code,
		LanguageName: det.Name,
	})
}

func (h *APIHandler) grammarCheck(c *gin.Context) {
	var req grammarCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "text is required"})
		return
	}

	result, err := h.assistService.GrammarCheck(c.Request.Context(), req.Text, req.Mode)
	if err != nil {
		aiRequestsTotal.WithLabelValues("grammar_check", "error").Inc()
		handleServiceError(c, err, h.logger)
		return
	}

	aiRequestsTotal.WithLabelValues("grammar_check", "success").Inc()
	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) generateChoices(c *gin.Context) {
	var req generateChoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "storyContext is required"})
		return
	}

	result, err := h.assistService.GenerateChoices(c.Request.Context(), req.StoryContext, req.CurrentScene, req.Mode)
	if err != nil {
		aiRequestsTotal.WithLabelValues("generate_choices", "error").Inc()
		handleServiceError(c, err, h.logger)
		return
	}

	aiRequestsTotal.WithLabelValues("generate_choices", "success").Inc()
	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) continueScene(c *gin.Context) {
	var req continueSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "storyContext and selectedChoice are required"})
		return
	}

	continuation, detectedLanguage, err := h.assistService.ContinueScene(c.Request.Context(), req.StoryContext, req.SelectedChoice, req.Mode)
	if err != nil {
		aiRequestsTotal.WithLabelValues("continue_scene", "error").Inc()
		handleServiceError(c, err, h.logger)
		return
	}

	aiRequestsTotal.WithLabelValues("continue_scene", "success").Inc()
	c.JSON(http.StatusOK, continueSceneResponse{
		Continuation:     continuation,
		DetectedLanguage: detectedLanguage,
	})
}
