package models

import "errors"

// Application-wide standard errors
var (
	// Resource errors
	ErrStoryNotFound = errors.New("story not found")
	ErrUserNotFound  = errors.New("user not found")

	// User & Authentication errors
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")

	// Token errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Request errors
	ErrInvalidInput = errors.New("invalid input data")

	// AI gateway errors
	ErrUpstream = errors.New("upstream AI request failed")

	ErrInternalServer = errors.New("internal server error")
)
