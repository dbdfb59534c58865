package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"storyweaver-server/internal/ai"
	"storyweaver-server/internal/language"
	"storyweaver-server/internal/models"
	"storyweaver-server/internal/prompt"
)

// AssistService runs the AI-assisted writing operations. Structured results
// degrade to safe defaults when the model output cannot be parsed; a flaky
// model never surfaces a raw parse error to the user.
type AssistService interface {
	DetectLanguage(text string) language.Detection
	GrammarCheck(ctx context.Context, text, mode string) (*models.GrammarCheckResult, error)
	GenerateChoices(ctx context.Context, storyContext, currentScene, mode string) (*models.PlotChoicesResult, error)
	ContinueScene(ctx context.Context, storyContext, selectedChoice, mode string) (string, string, error)
}

// Compile-time check
var _ AssistService = (*assistServiceImpl)(nil)

type assistServiceImpl struct {
	completer ai.Completer
	prompts   *prompt.Builder
	logger    *zap.Logger
}

// NewAssistService creates a new instance of assistServiceImpl.
func NewAssistService(completer ai.Completer, prompts *prompt.Builder, logger *zap.Logger) AssistService {
	return &assistServiceImpl{
		completer: completer,
		prompts:   prompts,
		logger:    logger.Named("AssistService"),
	}
}

func (s *assistServiceImpl) DetectLanguage(text string) language.Detection {
	return language.Detect(text)
}

// GrammarCheck reviews text in its own language. Transport failures
// propagate; malformed model output is replaced with a no-issues result
// echoing the original text.
func (s *assistServiceImpl) GrammarCheck(ctx context.Context, text, mode string) (*models.GrammarCheckResult, error) {
	p, detected := s.prompts.GrammarCheck(text, mode)

	raw, err := s.completer.Complete(ctx, p.System, p.User)
	if err != nil {
		return nil, err
	}

	result := &models.GrammarCheckResult{
		HasIssues:       false,
		Suggestions:     []models.GrammarSuggestion{},
		ImprovedVersion: text,
	}

	if span, ok := ai.ExtractJSONObject(raw); ok {
		var parsed models.GrammarCheckResult
		if err := json.Unmarshal([]byte(span), &parsed); err != nil {
			s.logger.Warn("Malformed grammar-check payload, using fallback", zap.Error(err))
		} else {
			result = &parsed
			if result.Suggestions == nil {
				result.Suggestions = []models.GrammarSuggestion{}
			}
			if result.ImprovedVersion == "" {
				result.ImprovedVersion = text
			}
		}
	} else {
		s.logger.Warn("No JSON object in grammar-check response, using fallback")
	}

	result.DetectedLanguage = detected.Name
	return result, nil
}

// GenerateChoices produces plot directions for what happens next. Malformed
// model output degrades to an empty choice list.
func (s *assistServiceImpl) GenerateChoices(ctx context.Context, storyContext, currentScene, mode string) (*models.PlotChoicesResult, error) {
	p, detected := s.prompts.PlotChoices(storyContext, currentScene, mode)

	raw, err := s.completer.Complete(ctx, p.System, p.User)
	if err != nil {
		return nil, err
	}

	result := &models.PlotChoicesResult{Choices: []models.PlotChoice{}}

	if span, ok := ai.ExtractJSONObject(raw); ok {
		var parsed models.PlotChoicesResult
		if err := json.Unmarshal([]byte(span), &parsed); err != nil {
			s.logger.Warn("Malformed choices payload, using fallback", zap.Error(err))
		} else {
			result = &parsed
			if result.Choices == nil {
				result.Choices = []models.PlotChoice{}
			}
		}
	} else {
		s.logger.Warn("No JSON object in choices response, using fallback")
	}

	result.DetectedLanguage = detected.Name
	return result, nil
}

// ContinueScene writes the next scene following the selected choice. The
// response is plain prose; it is returned as-is with the detected language
// display name.
func (s *assistServiceImpl) ContinueScene(ctx context.Context, storyContext, selectedChoice, mode string) (string, string, error) {
	p, detected := s.prompts.Continuation(storyContext, selectedChoice, mode)

	continuation, err := s.completer.Complete(ctx, p.System, p.User)
	if err != nil {
		return "", "", err
	}

	return continuation, detected.Name, nil
}
