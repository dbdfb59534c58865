package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyweaver-server/internal/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ExistsByUsernameOrEmail reports which of the two identifiers is already
	// taken, for registration-time duplicate checks.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error)
	UpdateSettings(ctx context.Context, id primitive.ObjectID, preferredLanguage string, darkMode bool) (*models.User, error)
	SetLastActiveStory(ctx context.Context, userID, storyID primitive.ObjectID) error
}

// StoryRepository persists story aggregates. Every mutation is filtered by
// (storyID, ownerID); a mismatched pair yields models.ErrStoryNotFound and
// never touches another user's story.
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Story, error)
	// ListByOwner returns the owner's stories ordered by lastAccessedAt
	// descending, so "resume" candidates come first.
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Story, error)
	// SaveDraft upserts the story's single in-flight draft and returns the
	// persisted save timestamp.
	SaveDraft(ctx context.Context, id, ownerID primitive.ObjectID, text string) (time.Time, error)
	// Update replaces the full aggregate, still scoped by (id, ownerID).
	Update(ctx context.Context, story *models.Story) error
	// Touch bumps lastAccessedAt on reads that should reorder resume candidates.
	Touch(ctx context.Context, id, ownerID primitive.ObjectID) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
}
