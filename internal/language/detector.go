// Package language identifies the language of story text and maps ISO 639-3
// codes to display names.
package language

import (
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
)

// Detection is the outcome of language identification.
type Detection struct {
	Code string // ISO 639-3 code, e.g. "eng"
	Name string // display name, e.g. "English"
}

// Default is returned for short or undetectable samples.
var Default = Detection{Code: "eng", Name: "English"}

// Samples below this length are statistically unreliable.
const minSampleLength = 10

var displayNames = map[string]string{
	"eng": "English",
	"spa": "Spanish",
	"fra": "French",
	"deu": "German",
	"ita": "Italian",
	"por": "Portuguese",
	"rus": "Russian",
	"jpn": "Japanese",
	"kor": "Korean",
	"cmn": "Chinese",
	"hin": "Hindi",
	"arb": "Arabic",
	"ben": "Bengali",
	"tel": "Telugu",
	"tam": "Tamil",
	"mar": "Marathi",
	"urd": "Urdu",
	"vie": "Vietnamese",
	"tha": "Thai",
	"pol": "Polish",
	"ukr": "Ukrainian",
	"nld": "Dutch",
	"swe": "Swedish",
}

// Detect identifies the language of text. Trimmed samples shorter than 10
// characters skip detection and return the default. Detection never fails
// visibly: any internal error also maps to the default result.
func Detect(text string) (det Detection) {
	defer func() {
		if r := recover(); r != nil {
			det = Default
		}
	}()

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minSampleLength {
		return Default
	}

	info := whatlanggo.Detect(trimmed)
	code := whatlanggo.LangToString(info.Lang)
	if code == "" {
		return Default
	}

	return Detection{Code: code, Name: DisplayName(code)}
}

// DisplayName maps an ISO 639-3 code to its display name. Unmapped codes fall
// back to "English"; the raw code is still reported by Detect.
func DisplayName(code string) string {
	if name, ok := displayNames[code]; ok {
		return name
	}
	return "English"
}
