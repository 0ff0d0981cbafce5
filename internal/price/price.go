// Package price detects and strips currency-like substrings from menu text.
// RemoveAll is idempotent and ValidateClean is a strictly stronger post-check:
// for any input t, ValidateClean(RemoveAll(t)) holds.
package price

import "regexp"

// Rule is one named price-matching rule. Rules are applied in order; the
// names exist so individual rules can be unit-tested and reported.
type Rule struct {
	Name string
	Re   *regexp.Regexp
}

// removeRules is the ordered battery applied by RemoveAll. Symbol coverage:
// $ € £ ¥ plus spelled-out currency words.
var removeRules = []Rule{
	{"symbol-number", regexp.MustCompile(`[$€£¥]\s*\d+(?:[.,]\d{1,2})?`)},
	{"number-symbol", regexp.MustCompile(`\d+(?:[.,]\d{1,2})?\s*[$€£¥]`)},
	{"bare-decimal", regexp.MustCompile(`\d+[.,]\d{2}\b`)},
	{"line-end-number", regexp.MustCompile(`(?:^|\s)\d{1,4}(?:[.,]\d{1,2})?\s*$`)},
	{"line-start-number", regexp.MustCompile(`^\s*\d{1,4}(?:[.,]\d{1,2})?(?:\s+|$)`)},
	{"number-currency-word", regexp.MustCompile(`(?i)\d+(?:[.,]\d{1,2})?\s*(?:dollars?|euros?|eur|usd|pounds|gbp|cad|aud)\b`)},
	{"standalone-number", regexp.MustCompile(`\b\d{2,}\b`)},
	{"market-price", regexp.MustCompile(`(?i)\bmarket\s+price\b`)},
}

var (
	reCurrencySymbol = regexp.MustCompile(`[$€£¥]`)
	reMultiSpace     = regexp.MustCompile(`\s{2,}`)
	// leftover separators once a price has been cut out: "Salmon - " etc.
	reEdgeJunk = regexp.MustCompile(`^[\s.,;:\-–—]+|[\s.,;:\-–—]+$`)

	reStandalone   = regexp.MustCompile(`\b\d{2,}\b`)
	reMarketPhrase = regexp.MustCompile(`(?i)\bmarket\s+price\b`)
)

// Rules returns the remove battery for per-rule testing.
func Rules() []Rule {
	return removeRules
}

// ContainsAny reports whether any price rule matches the text.
func ContainsAny(text string) bool {
	for _, r := range removeRules {
		if r.Re.MatchString(text) {
			return true
		}
	}
	return reCurrencySymbol.MatchString(text)
}

// RemoveAll strips every price-like substring, then leftover currency symbols,
// and collapses whitespace. Removal can expose new matches (trimming trailing
// punctuation can leave a bare number at line end), so the whole pass runs to
// a fixpoint; re-applying RemoveAll to its own output is a no-op.
func RemoveAll(text string) string {
	for {
		prev := text
		for _, r := range removeRules {
			text = r.Re.ReplaceAllString(text, " ")
		}
		text = reCurrencySymbol.ReplaceAllString(text, " ")
		text = reMultiSpace.ReplaceAllString(text, " ")
		text = reEdgeJunk.ReplaceAllString(text, "")
		if text == prev {
			return text
		}
	}
}

// ValidateClean is the stricter post-check gating candidate emission: false
// if any currency symbol, any 2-4 digit standalone number, or the "market
// price" phrase remains. Failing candidates are discarded, not repaired.
func ValidateClean(text string) bool {
	if reCurrencySymbol.MatchString(text) {
		return false
	}
	if reStandalone.MatchString(text) {
		return false
	}
	if reMarketPhrase.MatchString(text) {
		return false
	}
	return true
}
