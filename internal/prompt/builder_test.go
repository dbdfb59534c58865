package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyweaver-server/internal/language"
)

// fixedDetector always reports the given detection regardless of input.
func fixedDetector(det language.Detection) func(string) language.Detection {
	return func(string) language.Detection { return det }
}

func TestGrammarCheckPromptCarriesLanguageLock(t *testing.T) {
	b := &Builder{detect: fixedDetector(language.Detection{Code: "spa", Name: "Spanish"})}

	p, det := b.GrammarCheck("El gato corre rapido por el jardin", "fantasy")

	assert.Equal(t, "spa", det.Code)
	assert.Equal(t, "Spanish", det.Name)

	assert.Contains(t, p.System, "You MUST respond ONLY in Spanish")
	assert.Contains(t, p.System, "Do not translate")
	assert.Contains(t, p.System, "cultural context")

	assert.Contains(t, p.User, "fantasy story")
	assert.Contains(t, p.User, `Text: "El gato corre rapido por el jardin"`)
	assert.Contains(t, p.User, `"improvedVersion": "full improved text (in Spanish)"`)
	// Every generated JSON field is itself phrased "in <language>".
	assert.Equal(t, 4, strings.Count(p.User, "(in Spanish)"))
}

func TestPlotChoicesPromptDetectsFromConcatenatedContext(t *testing.T) {
	var seen string
	b := &Builder{detect: func(text string) language.Detection {
		seen = text
		return language.Detection{Code: "fra", Name: "French"}
	}}

	p, det := b.PlotChoices("Il etait une fois", "La foret sombre", "mystery")

	assert.Equal(t, "Il etait une fois La foret sombre", seen)
	assert.Equal(t, "French", det.Name)

	assert.Contains(t, p.User, "Generate 3 compelling plot direction choices")
	assert.Contains(t, p.User, `"id": 1`)
	assert.Contains(t, p.User, `"id": 2`)
	assert.Contains(t, p.User, `"id": 3`)
	assert.Contains(t, p.User, "Story so far:\nIl etait une fois")
	assert.Contains(t, p.User, "Current scene:\nLa foret sombre")
	assert.Contains(t, p.System, "You MUST respond ONLY in French")
}

func TestContinuationPromptIsPlainProse(t *testing.T) {
	b := &Builder{detect: fixedDetector(language.Detection{Code: "eng", Name: "English"})}

	p, det := b.Continuation("Once upon a time", "Follow the stranger", "horror")

	require.Equal(t, "eng", det.Code)

	assert.Contains(t, p.System, "specializing in horror stories")
	assert.Contains(t, p.System, "You MUST write ONLY in English")

	assert.Contains(t, p.User, "Chosen direction (in English):\nFollow the stranger")
	assert.Contains(t, p.User, "no JSON formatting")
	assert.NotContains(t, p.User, "Respond in JSON format")
}

func TestNewBuilderUsesRealDetector(t *testing.T) {
	b := NewBuilder()

	_, det := b.GrammarCheck("short", "fantasy")
	assert.Equal(t, language.Default, det)
}
