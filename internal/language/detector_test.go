package language

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectShortTextReturnsDefault(t *testing.T) {
	cases := []string{
		"",
		"hi",
		"short",
		"123456789", // 9 characters, one below the threshold
		"   \t\n  ",
		strings.Repeat(" ", 40), // whitespace only, trims to empty
		"  hola    ",            // padded, trims below the threshold
	}

	for _, text := range cases {
		det := Detect(text)
		assert.Equal(t, Default, det, "expected default for %q", text)
	}
}

func TestDetectEnglish(t *testing.T) {
	det := Detect("The old lighthouse keeper climbed the spiral stairs every evening to light the lamp before the ships arrived.")
	assert.Equal(t, "eng", det.Code)
	assert.Equal(t, "English", det.Name)
}

func TestDetectSpanish(t *testing.T) {
	det := Detect("La anciana caminaba lentamente por las calles empedradas del pueblo mientras recordaba los veranos de su infancia en la casa de sus abuelos.")
	assert.Equal(t, "spa", det.Code)
	assert.Equal(t, "Spanish", det.Name)
}

func TestDetectRussian(t *testing.T) {
	det := Detect("Старый маяк стоял на скалистом берегу, и каждый вечер смотритель поднимался по винтовой лестнице, чтобы зажечь лампу.")
	assert.Equal(t, "rus", det.Code)
	assert.Equal(t, "Russian", det.Name)
}

func TestDisplayNameFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "French", DisplayName("fra"))
	assert.Equal(t, "Chinese", DisplayName("cmn"))
	assert.Equal(t, "English", DisplayName("zzz"))
	assert.Equal(t, "English", DisplayName(""))
}
