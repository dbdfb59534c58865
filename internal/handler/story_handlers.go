package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyweaver-server/internal/middleware"
	"storyweaver-server/internal/models"
	"storyweaver-server/internal/service"
)

// storyIDParam parses the :id path parameter as an ObjectID.
func storyIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid story id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *APIHandler) createStory(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req createStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	story, err := h.storyService.CreateStory(c.Request.Context(), userID, req.Title, req.Mode, req.InitialText)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	storiesCreatedTotal.Inc()
	c.JSON(http.StatusCreated, storyResponse{Story: story})
}

func (h *APIHandler) listStories(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	stories, err := h.storyService.ListStories(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	if stories == nil {
		stories = []models.Story{}
	}

	c.JSON(http.StatusOK, storiesResponse{Stories: stories})
}

func (h *APIHandler) getStory(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}
	storyID, ok := storyIDParam(c)
	if !ok {
		return
	}

	story, err := h.storyService.GetStory(c.Request.Context(), storyID, userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, storyResponse{Story: story})
}

func (h *APIHandler) resumeLastActive(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	story, err := h.storyService.ResumeLastActive(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	// No last active story resolves to an explicit null, not an error.
	c.JSON(http.StatusOK, storyResponse{Story: story})
}

func (h *APIHandler) saveDraft(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}
	storyID, ok := storyIDParam(c)
	if !ok {
		return
	}

	var req saveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	lastSaved, err := h.storyService.SaveDraft(c.Request.Context(), storyID, userID, req.DraftText)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	draftSavesTotal.Inc()
	c.JSON(http.StatusOK, saveDraftResponse{Success: true, LastSaved: lastSaved})
}

func (h *APIHandler) commitScene(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}
	storyID, ok := storyIDParam(c)
	if !ok {
		return
	}

	var req commitSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "text is required"})
		return
	}

	story, err := h.storyService.CommitScene(c.Request.Context(), storyID, userID, req.Text, req.FromChoice)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	scenesCommittedTotal.Inc()
	c.JSON(http.StatusOK, storyResponse{Story: story})
}

func (h *APIHandler) updateStory(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}
	storyID, ok := storyIDParam(c)
	if !ok {
		return
	}

	var req updateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	story, err := h.storyService.UpdateStory(c.Request.Context(), storyID, userID, service.StoryPatch{
		Title:  req.Title,
		Scenes: req.Scenes,
		Status: req.Status,
	})
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, storyResponse{Story: story})
}

func (h *APIHandler) deleteStory(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}
	storyID, ok := storyIDParam(c)
	if !ok {
		return
	}

	if err := h.storyService.DeleteStory(c.Request.Context(), storyID, userID); err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Story deleted"})
}
