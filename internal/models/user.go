package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account.
type User struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Username          string              `bson:"username" json:"username"`
	Email             string              `bson:"email" json:"email"`
	PasswordHash      string              `bson:"password" json:"-"` // Не отдаем хеш пароля
	PreferredLanguage string              `bson:"preferredLanguage" json:"preferredLanguage"`
	DarkMode          bool                `bson:"darkMode" json:"darkMode"`
	// LastActiveStoryID is a lookup aid, not an ownership link. The story it
	// points to may be deleted at any time; resolution degrades to "none".
	LastActiveStoryID *primitive.ObjectID `bson:"lastActiveStoryId,omitempty" json:"lastActiveStoryId,omitempty"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
}
