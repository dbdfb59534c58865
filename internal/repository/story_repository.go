package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"storyweaver-server/internal/models"
)

// Compile-time check
var _ StoryRepository = (*mongoStoryRepository)(nil)

type mongoStoryRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewMongoStoryRepository creates a StoryRepository backed by the stories collection.
func NewMongoStoryRepository(db *mongo.Database, logger *zap.Logger) StoryRepository {
	return &mongoStoryRepository{
		col:    db.Collection(storiesCollection),
		logger: logger.Named("StoryRepository"),
	}
}

// ownedFilter scopes every story query by owner, not just by identifier.
func ownedFilter(id, ownerID primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "ownerId": ownerID}
}

func (r *mongoStoryRepository) Create(ctx context.Context, story *models.Story) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	story.CreatedAt = now
	story.UpdatedAt = now
	story.LastAccessedAt = now
	if story.Scenes == nil {
		story.Scenes = []models.Scene{}
	}

	res, err := r.col.InsertOne(ctx, story)
	if err != nil {
		r.logger.Error("Failed to insert story", zap.String("title", story.Title), zap.Error(err))
		return fmt.Errorf("failed to insert story: %w", err)
	}

	story.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoStoryRepository) GetByID(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Story, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var story models.Story
	err := r.col.FindOne(ctx, ownedFilter(id, ownerID)).Decode(&story)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch story: %w", err)
	}

	return &story, nil
}

func (r *mongoStoryRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Story, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "lastAccessedAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer cursor.Close(ctx)

	stories := []models.Story{}
	if err := cursor.All(ctx, &stories); err != nil {
		return nil, fmt.Errorf("failed to decode stories: %w", err)
	}

	return stories, nil
}

func (r *mongoStoryRepository) SaveDraft(ctx context.Context, id, ownerID primitive.ObjectID, text string) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"currentDraft":   models.Draft{Text: text, LastSaved: now},
		"lastAccessedAt": now,
		"updatedAt":      now,
	}}

	res, err := r.col.UpdateOne(ctx, ownedFilter(id, ownerID), update)
	if err != nil {
		r.logger.Error("Failed to save draft", zap.String("storyID", id.Hex()), zap.Error(err))
		return time.Time{}, fmt.Errorf("failed to save draft: %w", err)
	}
	if res.MatchedCount == 0 {
		return time.Time{}, models.ErrStoryNotFound
	}

	return now, nil
}

func (r *mongoStoryRepository) Update(ctx context.Context, story *models.Story) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	story.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, ownedFilter(story.ID, story.OwnerID), story)
	if err != nil {
		r.logger.Error("Failed to update story", zap.String("storyID", story.ID.Hex()), zap.Error(err))
		return fmt.Errorf("failed to update story: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrStoryNotFound
	}

	return nil
}

func (r *mongoStoryRepository) Touch(ctx context.Context, id, ownerID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, ownedFilter(id, ownerID), bson.M{"$set": bson.M{"lastAccessedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("failed to touch story: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrStoryNotFound
	}

	return nil
}

func (r *mongoStoryRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, ownedFilter(id, ownerID))
	if err != nil {
		r.logger.Error("Failed to delete story", zap.String("storyID", id.Hex()), zap.Error(err))
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrStoryNotFound
	}

	return nil
}
