package models

import "github.com/golang-jwt/jwt/v5"

// Claims carries the authenticated user identity inside a JWT.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
