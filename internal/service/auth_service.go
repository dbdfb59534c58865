package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storyweaver-server/internal/models"
	"storyweaver-server/internal/repository"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 8
)

// AuthService handles registration, login, settings and token issuance.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	UpdateSettings(ctx context.Context, userID primitive.ObjectID, preferredLanguage string, darkMode bool) (*models.User, error)
}

// Compile-time check
var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthService creates a new instance of authServiceImpl.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger.Named("AuthService"),
	}
}

// Register creates a new user and returns it together with a signed token.
func (s *authServiceImpl) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	logFields := []zap.Field{zap.String("username", username), zap.String("email", email)}
	s.logger.Info("Registering new user", logFields...)

	if _, err := mail.ParseAddress(email); err != nil {
		s.logger.Warn("Registration attempt with invalid email format", append(logFields, zap.Error(err))...)
		return nil, "", fmt.Errorf("invalid email format: %w", models.ErrInvalidInput)
	}
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return nil, "", fmt.Errorf("username length must be between %d and %d characters: %w", minUsernameLength, maxUsernameLength, models.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, models.ErrInvalidInput)
	}

	usernameTaken, emailTaken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		s.logger.Error("Error checking existing user during registration", append(logFields, zap.Error(err))...)
		return nil, "", fmt.Errorf("error checking existing user: %w", err)
	}
	if usernameTaken {
		return nil, "", models.ErrUserAlreadyExists
	}
	if emailTaken {
		return nil, "", models.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", append(logFields, zap.Error(err))...)
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:          username,
		Email:             email,
		PasswordHash:      string(hash),
		PreferredLanguage: "en",
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User registered", zap.String("userID", user.ID.Hex()))
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		s.logger.Error("Error fetching user during login", zap.String("email", email), zap.Error(err))
		return nil, "", fmt.Errorf("error fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login attempt with wrong password", zap.String("email", email))
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User logged in", zap.String("userID", user.ID.Hex()))
	return user, token, nil
}

// UpdateSettings persists display preferences.
func (s *authServiceImpl) UpdateSettings(ctx context.Context, userID primitive.ObjectID, preferredLanguage string, darkMode bool) (*models.User, error) {
	user, err := s.userRepo.UpdateSettings(ctx, userID, preferredLanguage, darkMode)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return user, nil
}

func (s *authServiceImpl) issueToken(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := &models.Claims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
