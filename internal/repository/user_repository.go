package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"storyweaver-server/internal/models"
)

// Compile-time check
var _ UserRepository = (*mongoUserRepository)(nil)

type mongoUserRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewMongoUserRepository creates a UserRepository backed by the users collection.
func NewMongoUserRepository(db *mongo.Database, logger *zap.Logger) UserRepository {
	return &mongoUserRepository{
		col:    db.Collection(usersCollection),
		logger: logger.Named("UserRepository"),
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		r.logger.Error("Failed to insert user", zap.String("username", user.Username), zap.Error(err))
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	return &user, nil
}

func (r *mongoUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	usernameCount, err := r.col.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return false, false, fmt.Errorf("failed to count users by username: %w", err)
	}

	emailCount, err := r.col.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, false, fmt.Errorf("failed to count users by email: %w", err)
	}

	return usernameCount > 0, emailCount > 0, nil
}

func (r *mongoUserRepository) UpdateSettings(ctx context.Context, id primitive.ObjectID, preferredLanguage string, darkMode bool) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"preferredLanguage": preferredLanguage,
		"darkMode":          darkMode,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user settings: %w", err)
	}

	return &user, nil
}

func (r *mongoUserRepository) SetLastActiveStory(ctx context.Context, userID, storyID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"lastActiveStoryId": storyID}})
	if err != nil {
		return fmt.Errorf("failed to set last active story: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrUserNotFound
	}

	return nil
}
