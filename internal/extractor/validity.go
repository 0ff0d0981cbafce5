package extractor

import (
	"strings"

	"github.com/josephvaleri/mlmp/internal/lexicon"
	"github.com/josephvaleri/mlmp/internal/price"
)

// IsValidEntreeName is the emission gate: every candidate must clear it after
// price removal. Rejects spans that start with a conjunction/preposition,
// carry mid-string comma/period punctuation, are under 4 characters or 2
// words, or still fail the price validator.
func IsValidEntreeName(text string, lex *lexicon.Lexicon) bool {
	text = strings.TrimSpace(text)
	if len(text) < 4 {
		return false
	}
	words := strings.Fields(text)
	if len(words) < 2 {
		return false
	}
	if lex.IsLeadingReject(words[0]) {
		return false
	}
	// A trailing period is display punctuation; anything interior marks a
	// clause, not a name.
	if strings.ContainsAny(strings.TrimRight(text, "."), ",.") {
		return false
	}
	return price.ValidateClean(text)
}
