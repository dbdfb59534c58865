package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings for the storyweaver server.
type Config struct {
	Port     string `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// MongoDB settings
	MongoURI      string        `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string        `envconfig:"MONGODB_DATABASE" default:"storyweaver"`
	MongoTimeout  time.Duration `envconfig:"MONGODB_TIMEOUT" default:"10s"`

	// JWT settings
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"720h"` // 30 days

	// AI provider settings (OpenAI-compatible chat completions)
	AIAPIKey  string        `envconfig:"MISTRAL_API_KEY" required:"true"`
	AIBaseURL string        `envconfig:"AI_BASE_URL" default:"https://api.mistral.ai/v1"`
	AIModel   string        `envconfig:"AI_MODEL" default:"mistral-small-latest"`
	AITimeout time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`

	// CORS
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	return &cfg, nil
}
