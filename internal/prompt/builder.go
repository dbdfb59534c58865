// Package prompt composes system/user prompt pairs for the AI assistant.
// Every prompt carries the language lock: the model must answer in the
// language detected from the user's own text.
package prompt

import (
	"fmt"

	"storyweaver-server/internal/language"
)

// Prompt is a system instruction plus a user prompt, ready for the gateway.
type Prompt struct {
	System string
	User   string
}

// Builder builds prompts for the three assistant operations. It performs no
// I/O; the detected language is returned so callers can display it.
type Builder struct {
	detect func(string) language.Detection
}

// NewBuilder returns a Builder backed by the standard language detector.
func NewBuilder() *Builder {
	return &Builder{detect: language.Detect}
}

// languageLock is the non-negotiable instruction appended to every system
// prompt so the model does not drift back into English.
func languageLock(name string) string {
	return fmt.Sprintf("The user is writing in %s. You MUST respond ONLY in %s. Do not translate or use any other language. Maintain the exact language and cultural context.", name, name)
}

// GrammarCheck builds the grammar/spelling review prompt. Language is
// detected from the text under review.
func (b *Builder) GrammarCheck(text, mode string) (Prompt, language.Detection) {
	det := b.detect(text)

	system := "You are a creative writing assistant. " + languageLock(det.Name)

	user := fmt.Sprintf(`You are a creative writing assistant for a %[1]s story.

The user is writing in %[2]s. You MUST respond ONLY in %[2]s.

Check the following text for grammar, spelling, and suggest improvements for tone and wording that fit the %[1]s genre.

Text: "%[3]s"

Respond in JSON format (but keep all text content in %[2]s):
{
  "hasIssues": boolean,
  "suggestions": [
    {
      "original": "text with issue (in %[2]s)",
      "suggested": "improved text (in %[2]s)",
      "reason": "why this is better (in %[2]s)"
    }
  ],
  "improvedVersion": "full improved text (in %[2]s)"
}`, mode, det.Name, text)

	return Prompt{System: system, User: user}, det
}

// PlotChoices builds the choice-generation prompt. Language is detected from
// the story so far concatenated with the current scene.
func (b *Builder) PlotChoices(storyContext, currentScene, mode string) (Prompt, language.Detection) {
	det := b.detect(storyContext + " " + currentScene)

	system := "You are a creative writing assistant. " + languageLock(det.Name)

	user := fmt.Sprintf(`You are creating plot choices for a %[1]s story.

The story is written in %[2]s. You MUST respond ONLY in %[2]s.

Story so far:
%[3]s

Current scene:
%[4]s

Generate 3 compelling plot direction choices for what happens next. Each should be 50-100 words in %[2]s.

Respond in JSON format (but keep all text content in %[2]s):
{
  "choices": [
    {
      "id": 1,
      "title": "Brief title (in %[2]s)",
      "description": "What happens in this choice (in %[2]s)"
    },
    {
      "id": 2,
      "title": "Brief title (in %[2]s)",
      "description": "What happens in this choice (in %[2]s)"
    },
    {
      "id": 3,
      "title": "Brief title (in %[2]s)",
      "description": "What happens in this choice (in %[2]s)"
    }
  ]
}`, mode, det.Name, storyContext, currentScene)

	return Prompt{System: system, User: user}, det
}

// Continuation builds the scene-continuation prompt. The response is plain
// prose, no JSON. Language is detected from the story so far.
func (b *Builder) Continuation(storyContext, selectedChoice, mode string) (Prompt, language.Detection) {
	det := b.detect(storyContext)

	system := fmt.Sprintf("You are a creative writer specializing in %[1]s stories. The story is written in %[2]s. You MUST write ONLY in %[2]s.", mode, det.Name)

	user := fmt.Sprintf(`Continue the story based on the chosen plot direction. Write in %[2]s.

Story so far (in %[2]s):
%[3]s

Chosen direction (in %[2]s):
%[4]s

Write the next scene (200-300 words) that follows this choice in %[2]s. Make it engaging and appropriate for the %[1]s genre.

Respond with just the story text in %[2]s, no JSON formatting.`, mode, det.Name, storyContext, selectedChoice)

	return Prompt{System: system, User: user}, det
}
