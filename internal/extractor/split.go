package extractor

import (
	"regexp"
	"strings"
)

// A splitRule proposes a way to break one OCR line into independent item
// spans. Rules run in order; the first one that yields parts wins, and a line
// no rule claims passes through whole. Data-driven so each rule is testable
// on its own.
type splitRule struct {
	name  string
	apply func(e *Extractor, text string) []string
}

var splitRules = []splitRule{
	{"name-price", splitNamePrice},
	{"compound-markers", splitCompoundMarkers},
	{"price-delimited", splitPriceDelimited},
}

// reNamePrice captures "item name followed by a price" repeatedly across a
// line, which is how merged columns come out of OCR.
var reNamePrice = regexp.MustCompile(`([^\d$€£¥]{3,}?)\s*(?:[$€£¥]\s*\d+(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?\s*[$€£¥]|\d+[.,]\d{2})`)

// rePriceSpan is the delimiter form of the price battery used by the raw
// fallback split.
var rePriceSpan = regexp.MustCompile(`(?i)[$€£¥]\s*\d+(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?\s*[$€£¥]|\d+[.,]\d{2}|\bmarket\s+price\b`)

// splitLine applies the split rules in order.
func (e *Extractor) splitLine(text string) []string {
	for _, rule := range splitRules {
		if parts := rule.apply(e, text); len(parts) > 0 {
			return parts
		}
	}
	return []string{text}
}

// splitNamePrice scans for repeated name+price pairs. The remainder after the
// last pair is kept as a trailing part so downstream filters can judge it
// (usually a description clause).
func splitNamePrice(_ *Extractor, text string) []string {
	matches := reNamePrice.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	var parts []string
	end := 0
	for _, m := range matches {
		// m[2]:m[3] is the captured name span.
		if name := strings.TrimSpace(text[m[2]:m[3]]); name != "" {
			parts = append(parts, name)
		}
		end = m[1]
	}
	if rest := strings.TrimSpace(text[end:]); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}

// splitCompoundMarkers breaks merged multi-dish lines at item-terminating
// nouns ("Egg Rolls Chicken Pasta" -> "Egg Rolls", "Chicken Pasta").
func splitCompoundMarkers(e *Extractor, text string) []string {
	words := strings.Fields(text)
	if len(words) < 3 {
		return nil
	}
	var parts []string
	start := 0
	for i, w := range words {
		if i > start && i < len(words)-1 && e.lex.IsCompoundMarker(w) {
			parts = append(parts, strings.Join(words[start:i+1], " "))
			start = i + 1
		}
	}
	if start == 0 {
		return nil // no marker boundary found
	}
	if start < len(words) {
		parts = append(parts, strings.Join(words[start:], " "))
	}
	return parts
}

// splitPriceDelimited is the raw fallback: cut the line wherever a price
// appears and keep the non-empty spans between cuts.
func splitPriceDelimited(_ *Extractor, text string) []string {
	if !rePriceSpan.MatchString(text) {
		return nil
	}
	var parts []string
	for _, span := range rePriceSpan.Split(text, -1) {
		if span = strings.TrimSpace(span); span != "" {
			parts = append(parts, span)
		}
	}
	return parts
}
