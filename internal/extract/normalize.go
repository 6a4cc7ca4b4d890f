package extract

import (
	"regexp"
	"strings"
)

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	rePunct      = regexp.MustCompile(`[.,]`)
)

// Normalize canonicalizes OCR output for label matching: uppercase, any run of
// whitespace (including newlines OCR inserts mid-value) collapsed to a single
// space, and sentence punctuation stripped since it breaks literal-label
// matches. The order matters and the whole transform is idempotent.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToUpper(s)
	s = reWhitespace.ReplaceAllString(s, " ")
	s = rePunct.ReplaceAllString(s, "")
	// stripping "A . B" leaves a double space; collapse once more so
	// normalize(normalize(x)) == normalize(x) holds
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
