package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"storyweaver-server/internal/editor"
	"storyweaver-server/internal/language"
	"storyweaver-server/internal/models"
	"storyweaver-server/internal/repository"
)

// StoryPatch carries the optional fields of a bulk story update. Nil fields
// are left untouched.
type StoryPatch struct {
	Title  *string
	Scenes []models.Scene
	Status *models.StoryStatus
}

// StoryService implements the draft/scene lifecycle over the story store.
type StoryService interface {
	CreateStory(ctx context.Context, ownerID primitive.ObjectID, title, mode, initialText string) (*models.Story, error)
	SaveDraft(ctx context.Context, storyID, ownerID primitive.ObjectID, text string) (time.Time, error)
	CommitScene(ctx context.Context, storyID, ownerID primitive.ObjectID, text, fromChoice string) (*models.Story, error)
	GetStory(ctx context.Context, storyID, ownerID primitive.ObjectID) (*models.Story, error)
	ListStories(ctx context.Context, ownerID primitive.ObjectID) ([]models.Story, error)
	// ResumeLastActive resolves the user's last active story. A missing or
	// deleted target degrades to (nil, nil), never to an error.
	ResumeLastActive(ctx context.Context, ownerID primitive.ObjectID) (*models.Story, error)
	UpdateStory(ctx context.Context, storyID, ownerID primitive.ObjectID, patch StoryPatch) (*models.Story, error)
	DeleteStory(ctx context.Context, storyID, ownerID primitive.ObjectID) error
}

// Compile-time checks. StoryService also backs editor sessions as their
// draft store.
var (
	_ StoryService      = (*storyServiceImpl)(nil)
	_ editor.DraftStore = (StoryService)(nil)
)

type storyServiceImpl struct {
	storyRepo repository.StoryRepository
	userRepo  repository.UserRepository
	logger    *zap.Logger
}

// NewStoryService creates a new instance of storyServiceImpl.
func NewStoryService(storyRepo repository.StoryRepository, userRepo repository.UserRepository, logger *zap.Logger) StoryService {
	return &storyServiceImpl{
		storyRepo: storyRepo,
		userRepo:  userRepo,
		logger:    logger.Named("StoryService"),
	}
}

// CreateStory persists a new story with no scenes. The story language is
// detected from initialText when given, otherwise it defaults to English;
// the first committed scene overrides it either way.
func (s *storyServiceImpl) CreateStory(ctx context.Context, ownerID primitive.ObjectID, title, mode, initialText string) (*models.Story, error) {
	if title == "" {
		title = "Untitled Story"
	}

	detected := language.Default
	if initialText != "" {
		detected = language.Detect(initialText)
	}

	story := &models.Story{
		OwnerID:          ownerID,
		Title:            title,
		Mode:             mode,
		Scenes:           []models.Scene{},
		DetectedLanguage: detected.Code,
		Status:           models.StoryStatusDraft,
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	// A failure here leaves the back-reference stale; reads recover by
	// falling back to "none" when resolving it.
	if err := s.userRepo.SetLastActiveStory(ctx, ownerID, story.ID); err != nil {
		s.logger.Warn("Failed to update last active story", zap.String("userID", ownerID.Hex()), zap.Error(err))
	}

	s.logger.Info("Story created", zap.String("storyID", story.ID.Hex()), zap.String("mode", mode))
	return story, nil
}

// SaveDraft upserts the story's in-flight draft, owner-scoped.
func (s *storyServiceImpl) SaveDraft(ctx context.Context, storyID, ownerID primitive.ObjectID, text string) (time.Time, error) {
	savedAt, err := s.storyRepo.SaveDraft(ctx, storyID, ownerID, text)
	if err != nil {
		return time.Time{}, err
	}
	return savedAt, nil
}

// CommitScene promotes text to an immutable scene: appends it with its
// detected language, clears the draft and moves the story to in-progress.
// The first committed scene also fixes the story's detected language.
func (s *storyServiceImpl) CommitScene(ctx context.Context, storyID, ownerID primitive.ObjectID, text, fromChoice string) (*models.Story, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("scene text is required: %w", models.ErrInvalidInput)
	}

	story, err := s.storyRepo.GetByID(ctx, storyID, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	detected := language.Detect(text)

	story.Scenes = append(story.Scenes, models.Scene{
		Text:       text,
		Timestamp:  now,
		FromChoice: fromChoice,
		Language:   detected.Code,
	})

	if len(story.Scenes) == 1 {
		story.DetectedLanguage = detected.Code
	}

	story.CurrentDraft = &models.Draft{Text: "", LastSaved: now}
	story.Status = models.StoryStatusInProgress
	story.LastAccessedAt = now

	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}

	s.logger.Info("Scene committed",
		zap.String("storyID", story.ID.Hex()),
		zap.Int("sceneCount", len(story.Scenes)),
		zap.String("language", detected.Code))
	return story, nil
}

// GetStory fetches a story and marks it as the most recently accessed one.
func (s *storyServiceImpl) GetStory(ctx context.Context, storyID, ownerID primitive.ObjectID) (*models.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.storyRepo.Touch(ctx, storyID, ownerID); err != nil {
		s.logger.Warn("Failed to touch story", zap.String("storyID", storyID.Hex()), zap.Error(err))
	} else {
		story.LastAccessedAt = now
	}

	if err := s.userRepo.SetLastActiveStory(ctx, ownerID, storyID); err != nil {
		s.logger.Warn("Failed to update last active story", zap.String("userID", ownerID.Hex()), zap.Error(err))
	}

	return story, nil
}

func (s *storyServiceImpl) ListStories(ctx context.Context, ownerID primitive.ObjectID) ([]models.Story, error) {
	return s.storyRepo.ListByOwner(ctx, ownerID)
}

func (s *storyServiceImpl) ResumeLastActive(ctx context.Context, ownerID primitive.ObjectID) (*models.Story, error) {
	user, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if user.LastActiveStoryID == nil {
		return nil, nil
	}

	story, err := s.storyRepo.GetByID(ctx, *user.LastActiveStoryID, ownerID)
	if err != nil {
		if errors.Is(err, models.ErrStoryNotFound) {
			// The referenced story was deleted; the back-reference is a
			// lookup aid, so this resolves to "none".
			return nil, nil
		}
		return nil, err
	}

	if err := s.storyRepo.Touch(ctx, story.ID, ownerID); err != nil {
		s.logger.Warn("Failed to touch story", zap.String("storyID", story.ID.Hex()), zap.Error(err))
	}

	return story, nil
}

// UpdateStory applies a bulk update (title, scene replace, status).
func (s *storyServiceImpl) UpdateStory(ctx context.Context, storyID, ownerID primitive.ObjectID, patch StoryPatch) (*models.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		story.Title = *patch.Title
	}
	if patch.Scenes != nil {
		story.Scenes = patch.Scenes
	}
	if patch.Status != nil {
		story.Status = *patch.Status
	}

	// Keep the status consistent with the scene list when the caller
	// replaced scenes without saying what the status should be.
	if patch.Scenes != nil && patch.Status == nil {
		if len(story.Scenes) == 0 {
			story.Status = models.StoryStatusDraft
		} else if story.Status == models.StoryStatusDraft {
			story.Status = models.StoryStatusInProgress
		}
	}

	story.LastAccessedAt = time.Now().UTC()

	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}

	return story, nil
}

func (s *storyServiceImpl) DeleteStory(ctx context.Context, storyID, ownerID primitive.ObjectID) error {
	// The owner's lastActiveStoryId may still point at the deleted story;
	// resolution treats that as "none" instead of failing.
	return s.storyRepo.Delete(ctx, storyID, ownerID)
}
