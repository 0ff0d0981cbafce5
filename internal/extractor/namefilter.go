package extractor

import (
	"regexp"

	"github.com/josephvaleri/mlmp/internal/price"
	"github.com/josephvaleri/mlmp/internal/textutil"
)

// rePossessiveName matches "X's Restaurant/Cafe/Bistro..." style business
// names regardless of the suffix list.
var rePossessiveName = regexp.MustCompile(`(?i)\b\w+['’]s\s+(restaurant|cafe|café|bistro|grill|kitchen|tavern|trattoria|ristorante|brasserie|diner)\b`)

// isBusinessName reports whether text matches a possessive or suffixed
// business-name form, independent of where it sits on the page.
func (e *Extractor) isBusinessName(text string) bool {
	return rePossessiveName.MatchString(text) || e.lex.HasNameSuffix(text)
}

// isRestaurantName classifies a line as the restaurant's own name or page
// heading: either it matches a known business-name pattern, or it is short,
// early in the document, title- or caps-cased, unpriced, and followed
// shortly by a real section header.
func (e *Extractor) isRestaurantName(c *lineContext) bool {
	if price.ContainsAny(c.text) {
		return false
	}
	if e.isBusinessName(c.text) {
		return true
	}

	if textutil.TokenCount(c.text) > 5 {
		return false
	}
	if c.index >= e.cfg.NameZoneLines {
		return false
	}
	if !textutil.IsAllCaps(c.text) && !textutil.IsTitleCase(c.text) {
		return false
	}
	for _, h := range c.headers {
		if h.LineIndex > c.index && h.LineIndex <= c.index+e.cfg.HeaderLookahead {
			return true
		}
	}
	return false
}
