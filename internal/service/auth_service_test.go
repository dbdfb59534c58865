package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storyweaver-server/internal/models"
	"storyweaver-server/internal/repository/mocks"
)

const (
	testSecret = "service-test-secret"
	testTTL    = 720 * time.Hour
)

func newAuthService(userRepo *mocks.UserRepository) AuthService {
	return NewAuthService(userRepo, testSecret, testTTL, zap.NewNop())
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	svc := newAuthService(userRepo)

	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "ada", "ada@example.com").
		Return(false, false, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*models.User)
			user.ID = primitive.NewObjectID()
		}).
		Return(nil)

	user, token, err := svc.Register(context.Background(), "ada", "Ada@Example.com ", "password123")
	require.NoError(t, err)
	require.NotNil(t, user)

	// Email is normalized and the password is stored only as a hash.
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	assert.Equal(t, "en", user.PreferredLanguage)

	// The token is a valid HS256 JWT carrying the user's ID with a 30-day TTL.
	claims := &models.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(testTTL), claims.ExpiresAt.Time, time.Minute)

	userRepo.AssertExpectations(t)
}

func TestRegister_Validation(t *testing.T) {
	svc := newAuthService(new(mocks.UserRepository))

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"invalid email", "ada", "not-an-email", "password123"},
		{"username too short", "ad", "ada@example.com", "password123"},
		{"username too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "ada@example.com", "password123"},
		{"password too short", "ada", "ada@example.com", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tc.username, tc.email, tc.password)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	svc := newAuthService(userRepo)

	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "ada", "ada@example.com").
		Return(true, false, nil)

	_, _, err := svc.Register(context.Background(), "ada", "ada@example.com", "password123")
	assert.ErrorIs(t, err, models.ErrUserAlreadyExists)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	svc := newAuthService(userRepo)

	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "ada", "ada@example.com").
		Return(false, true, nil)

	_, _, err := svc.Register(context.Background(), "ada", "ada@example.com", "password123")
	assert.ErrorIs(t, err, models.ErrEmailAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	svc := newAuthService(userRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	stored := &models.User{
		ID:           primitive.NewObjectID(),
		Email:        "ada@example.com",
		PasswordHash: string(hash),
	}
	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(stored, nil)

	user, token, err := svc.Login(context.Background(), "ADA@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	svc := newAuthService(userRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	stored := &models.User{ID: primitive.NewObjectID(), Email: "ada@example.com", PasswordHash: string(hash)}

	userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(stored, nil)
	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, models.ErrUserNotFound)

	_, _, errWrongPassword := svc.Login(context.Background(), "ada@example.com", "wrong")
	_, _, errUnknownEmail := svc.Login(context.Background(), "ghost@example.com", "password123")

	// Both failures collapse to the same sentinel.
	assert.ErrorIs(t, errWrongPassword, models.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, models.ErrInvalidCredentials)
}

func TestUpdateSettings(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	svc := newAuthService(userRepo)

	userID := primitive.NewObjectID()
	updated := &models.User{ID: userID, PreferredLanguage: "fr", DarkMode: true}
	userRepo.On("UpdateSettings", mock.Anything, userID, "fr", true).Return(updated, nil)

	user, err := svc.UpdateSettings(context.Background(), userID, "fr", true)
	require.NoError(t, err)
	assert.Equal(t, "fr", user.PreferredLanguage)
	assert.True(t, user.DarkMode)
}
