package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyweaver-server/internal/models"
)

// Mock UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *UserRepository) UpdateSettings(ctx context.Context, id primitive.ObjectID, preferredLanguage string, darkMode bool) (*models.User, error) {
	args := m.Called(ctx, id, preferredLanguage, darkMode)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) SetLastActiveStory(ctx context.Context, userID, storyID primitive.ObjectID) error {
	args := m.Called(ctx, userID, storyID)
	return args.Error(0)
}

// Mock StoryRepository
type StoryRepository struct {
	mock.Mock
}

func (m *StoryRepository) Create(ctx context.Context, story *models.Story) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}

func (m *StoryRepository) GetByID(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Story, error) {
	args := m.Called(ctx, id, ownerID)
	story, _ := args.Get(0).(*models.Story)
	return story, args.Error(1)
}

func (m *StoryRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Story, error) {
	args := m.Called(ctx, ownerID)
	stories, _ := args.Get(0).([]models.Story)
	return stories, args.Error(1)
}

func (m *StoryRepository) SaveDraft(ctx context.Context, id, ownerID primitive.ObjectID, text string) (time.Time, error) {
	args := m.Called(ctx, id, ownerID, text)
	savedAt, _ := args.Get(0).(time.Time)
	return savedAt, args.Error(1)
}

func (m *StoryRepository) Update(ctx context.Context, story *models.Story) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}

func (m *StoryRepository) Touch(ctx context.Context, id, ownerID primitive.ObjectID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *StoryRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}
