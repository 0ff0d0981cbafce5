package extractor

import (
	"strings"

	"github.com/josephvaleri/mlmp/internal/price"
	"github.com/josephvaleri/mlmp/internal/textutil"
)

// isDescription classifies a line as description text rather than a dish
// name. index is the line's position; ctx supplies the previous-line signal
// (pass the line's own context when classifying it, or the current context
// when peeking at a neighbor).
//
// A priced line is never a description. Lines carrying a dish-noun anchor
// (crab, scallop, newburg, ...) are always dish names, as are short plain
// lines; otherwise any of the three description signals decides.
func (e *Extractor) isDescription(text string, ctx *lineContext, index int) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if price.ContainsAny(text) {
		return false
	}
	if e.lex.HasDishAnchor(text) {
		return false
	}

	words := textutil.TokenCount(text)
	descriptive := e.lex.HasDescriptiveWord(text)
	commaDensity := textutil.PunctuationDensity(text)

	// Short plain lines read as names.
	if words <= 3 && !descriptive && commaDensity < 0.05 {
		return false
	}

	if words > 6 && descriptive {
		return true
	}
	if commaDensity >= 0.05 {
		return true
	}

	// A long line following a short or all-caps line is usually the body
	// text under a heading.
	if index > 0 && index <= len(ctx.page.Lines) {
		prev := strings.TrimSpace(ctx.page.Lines[index-1].Text)
		if prev != "" && words >= 6 {
			if len(prev) < len(text) || textutil.IsAllCaps(prev) {
				return true
			}
		}
	}
	return false
}

// isDescriptionClause applies the description test to a split part of a
// line. Parts lack neighbor context, so the clause form leans on vocabulary:
// a five-plus word span with descriptive wording, or one opening as a
// continuation (", a rich buttery bisque..."), is a trailing description.
func (e *Extractor) isDescriptionClause(raw, cleaned string) bool {
	if strings.HasPrefix(strings.TrimSpace(raw), ",") {
		return true
	}
	if e.lex.HasDishAnchor(cleaned) {
		return false
	}
	return e.lex.HasDescriptiveWord(cleaned) && textutil.TokenCount(cleaned) >= 5
}
