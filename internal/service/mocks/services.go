package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyweaver-server/internal/language"
	"storyweaver-server/internal/models"
	"storyweaver-server/internal/service"
)

// Mock AuthService
type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func (m *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func (m *AuthService) UpdateSettings(ctx context.Context, userID primitive.ObjectID, preferredLanguage string, darkMode bool) (*models.User, error) {
	args := m.Called(ctx, userID, preferredLanguage, darkMode)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

// Mock StoryService
type StoryService struct {
	mock.Mock
}

func (m *StoryService) CreateStory(ctx context.Context, ownerID primitive.ObjectID, title, mode, initialText string) (*models.Story, error) {
	args := m.Called(ctx, ownerID, title, mode, initialText)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}

func (m *StoryService) SaveDraft(ctx context.Context, storyID, ownerID primitive.ObjectID, text string) (time.Time, error) {
	args := m.Called(ctx, storyID, ownerID, text)
	savedAt, _ := args.Get(0).(time.Time)
	return savedAt, args.Error(1)
}

func (m *StoryService) CommitScene(ctx context.Context, storyID, ownerID primitive.ObjectID, text, fromChoice string) (*models.Story, error) {
	args := m.Called(ctx, storyID, ownerID, text, fromChoice)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}

func (m *StoryService) GetStory(ctx context.Context, storyID, ownerID primitive.ObjectID) (*models.Story, error) {
	args := m.Called(ctx, storyID, ownerID)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}

func (m *StoryService) ListStories(ctx context.Context, ownerID primitive.ObjectID) ([]models.Story, error) {
	args := m.Called(ctx, ownerID)
	stories, _ := args.Get(0).([]models.Story)
	return stories, args.Error(1)
}

func (m *StoryService) ResumeLastActive(ctx context.Context, ownerID primitive.ObjectID) (*models.Story, error) {
	args := m.Called(ctx, ownerID)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}

func (m *StoryService) UpdateStory(ctx context.Context, storyID, ownerID primitive.ObjectID, patch service.StoryPatch) (*models.Story, error) {
	args := m.Called(ctx, storyID, ownerID, patch)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}

func (m *StoryService) DeleteStory(ctx context.Context, storyID, ownerID primitive.ObjectID) error {
	args := m.Called(ctx, storyID, ownerID)
	return args.Error(0)
}

// Mock AssistService
type AssistService struct {
	mock.Mock
}

func (m *AssistService) DetectLanguage(text string) language.Detection {
	args := m.Called(text)
	det, _ := args.Get(0).(language.Detection)
	return det
}

func (m *AssistService) GrammarCheck(ctx context.Context, text, mode string) (*models.GrammarCheckResult, error) {
	args := m.Called(ctx, text, mode)
	result, _ := args.Get(0).(*models.GrammarCheckResult)
	return result, args.Error(1)
}

func (m *AssistService) GenerateChoices(ctx context.Context, storyContext, currentScene, mode string) (*models.PlotChoicesResult, error) {
	args := m.Called(ctx, storyContext, currentScene, mode)
	result, _ := args.Get(0).(*models.PlotChoicesResult)
	return result, args.Error(1)
}

func (m *AssistService) ContinueScene(ctx context.Context, storyContext, selectedChoice, mode string) (string, string, error) {
	args := m.Called(ctx, storyContext, selectedChoice, mode)
	return args.String(0), args.String(1), args.Error(2)
}
