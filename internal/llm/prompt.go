package llm

import (
	"strings"

	"github.com/KHCFirm/pdf-parser/internal/claim"
)

// BuildSystemPrompt composes the extraction instruction around the canonical
// field vocabulary so the model's keys need as little standardizing as
// possible.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a medical claim form parser. You will be shown scanned pages of a single claim form.",
		"Read all text on the pages, then return ONLY a flat JSON object mapping field names to string values.",
		"Use exactly these field names where you can: " + strings.Join(claim.Vocabulary(), ", ") + ".",
		"Copy values verbatim from the form; do not reformat dates or amounts.",
		"Never output null. If a field is not visible on the form, omit it.",
		"Do not nest objects or arrays. Do not add commentary or markdown fences.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt is the text part accompanying the page images.
func BuildUserPrompt() string {
	return "Extract the claim fields from the attached form page(s) and return the JSON object."
}
