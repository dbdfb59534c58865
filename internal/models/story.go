package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoryStatus describes the lifecycle of a story.
// draft -> in-progress -> completed; completed is terminal.
type StoryStatus string

const (
	StoryStatusDraft      StoryStatus = "draft"
	StoryStatusInProgress StoryStatus = "in-progress"
	StoryStatusCompleted  StoryStatus = "completed"
)

// Scene is an immutable committed unit of story text. Once appended to a
// story it is never modified.
type Scene struct {
	Text       string    `bson:"text" json:"text"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	FromChoice string    `bson:"fromChoice,omitempty" json:"fromChoice,omitempty"`
	Language   string    `bson:"language" json:"language"`
}

// Draft holds the single in-flight, not-yet-committed scene text of a story.
type Draft struct {
	Text      string    `bson:"text" json:"text"`
	LastSaved time.Time `bson:"lastSaved" json:"lastSaved"`
}

// Story is the persisted aggregate: committed scenes plus at most one draft.
// Invariant: Status == draft <=> len(Scenes) == 0.
type Story struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID          primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Title            string             `bson:"title" json:"title"`
	Mode             string             `bson:"mode" json:"mode"`
	Scenes           []Scene            `bson:"scenes" json:"scenes"`
	CurrentDraft     *Draft             `bson:"currentDraft,omitempty" json:"currentDraft,omitempty"`
	DetectedLanguage string             `bson:"detectedLanguage" json:"detectedLanguage"`
	Status           StoryStatus        `bson:"status" json:"status"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
	LastAccessedAt   time.Time          `bson:"lastAccessedAt" json:"lastAccessedAt"`
}

// GrammarSuggestion is a single correction proposed by the assistant.
type GrammarSuggestion struct {
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
	Reason    string `json:"reason"`
}

// GrammarCheckResult is the structured grammar-check payload. When the model
// returns something unparseable the caller substitutes a result with
// HasIssues=false and ImprovedVersion set to the original text.
type GrammarCheckResult struct {
	HasIssues        bool                `json:"hasIssues"`
	Suggestions      []GrammarSuggestion `json:"suggestions"`
	ImprovedVersion  string              `json:"improvedVersion"`
	DetectedLanguage string              `json:"detectedLanguage,omitempty"`
}

// PlotChoice is one of the generated plot directions.
type PlotChoice struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PlotChoicesResult is the structured choice-generation payload.
type PlotChoicesResult struct {
	Choices          []PlotChoice `json:"choices"`
	DetectedLanguage string       `json:"detectedLanguage,omitempty"`
}
