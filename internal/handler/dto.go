package handler

import (
	"time"

	"storyweaver-server/internal/models"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type settingsRequest struct {
	PreferredLanguage string `json:"preferredLanguage" binding:"required"`
	DarkMode          bool   `json:"darkMode"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type userResponse struct {
	User *models.User `json:"user"`
}

type createStoryRequest struct {
	Title       string `json:"title"`
	Mode        string `json:"mode"`
	InitialText string `json:"initialText"`
}

type saveDraftRequest struct {
	DraftText string `json:"draftText"`
}

type saveDraftResponse struct {
	Success   bool      `json:"success"`
	LastSaved time.Time `json:"lastSaved"`
}

type commitSceneRequest struct {
	Text       string `json:"text" binding:"required"`
	FromChoice string `json:"fromChoice"`
}

type updateStoryRequest struct {
	Title  *string              `json:"title"`
	Scenes []models.Scene       `json:"scenes"`
	Status *models.StoryStatus  `json:"status"`
}

type storyResponse struct {
	Story *models.Story `json:"story"`
}

type storiesResponse struct {
	Stories []models.Story `json:"stories"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type detectLanguageRequest struct {
	Text string `json:"text"`
}

type detectLanguageResponse struct {
	LanguageCode string `json:"languageCode"`
	LanguageName string `json:"languageName"`
}

type grammarCheckRequest struct {
	Text string `json:"text" binding:"required"`
	Mode string `json:"mode"`
}

type generateChoicesRequest struct {
	StoryContext string `json:"storyContext" binding:"required"`
	Mode         string `json:"mode"`
	CurrentScene string `json:"currentScene"`
}

type continueSceneRequest struct {
	StoryContext   string `json:"storyContext" binding:"required"`
	Mode           string `json:"mode"`
	SelectedChoice string `json:"selectedChoice" binding:"required"`
}

type continueSceneResponse struct {
	Continuation     string `json:"continuation"`
	DetectedLanguage string `json:"detectedLanguage"`
}
