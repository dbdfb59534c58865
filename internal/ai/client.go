// Package ai is the gateway to the chat-completion provider. Requests are
// bounded one-shot calls; callers needing structured data extract a JSON
// object from the free-form output with ExtractJSONObject.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"storyweaver-server/internal/models"
)

const (
	samplingTemperature = 0.7
	maxCompletionTokens = 1500
)

// Completer sends a system+user prompt pair and returns the raw model output.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client calls an OpenAI-compatible chat-completion endpoint.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

var _ Completer = (*Client)(nil)

// Config holds the AI provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// New creates a chat-completion client.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key is not set")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "mistral-small-latest"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL

	return &Client{
		client:  openai.NewClientWithConfig(config),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger.Named("AIClient"),
	}, nil
}

// Complete sends a single chat-completion request. No retries, no streaming:
// each call either returns the raw model text or fails with ErrUpstream.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: samplingTemperature,
		MaxTokens:   maxCompletionTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("Chat completion request failed", zap.String("model", c.model), zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Warn("Chat completion returned no choices", zap.String("model", c.model))
		return "", fmt.Errorf("%w: empty completion", models.ErrUpstream)
	}

	return resp.Choices[0].Message.Content, nil
}
