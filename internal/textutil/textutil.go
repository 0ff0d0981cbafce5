// Package textutil holds stateless predicate and metric functions over a line
// of menu text. Deterministic, no I/O; every ratio guards its denominator.
package textutil

import (
	"strings"
	"unicode"

	"github.com/josephvaleri/mlmp/internal/lexicon"
)

// IsAllCaps reports whether every letter in s is uppercase. Non-letters are
// ignored; at least one letter is required.
func IsAllCaps(s string) bool {
	seenLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			seenLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return seenLetter
}

// IsTitleCase reports whether every word starts with an uppercase letter
// followed only by lowercase letters.
func IsTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		first := true
		for _, r := range w {
			if !unicode.IsLetter(r) {
				continue
			}
			if first {
				if !unicode.IsUpper(r) {
					return false
				}
				first = false
				continue
			}
			if !unicode.IsLower(r) {
				return false
			}
		}
	}
	return true
}

// LetterRatio is letters / length in runes (denominator floored at 1).
func LetterRatio(s string) float64 {
	letters, total := 0, 0
	for _, r := range s {
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return float64(letters) / float64(max(total, 1))
}

// UppercaseRatio is uppercase letters / letters (denominator floored at 1).
func UppercaseRatio(s string) float64 {
	upper, letters := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return float64(upper) / float64(max(letters, 1))
}

// PunctuationDensity is the count of ',' ';' ':' over length in runes
// (denominator floored at 1).
func PunctuationDensity(s string) float64 {
	count, total := 0, 0
	for _, r := range s {
		total++
		switch r {
		case ',', ';', ':':
			count++
		}
	}
	return float64(count) / float64(max(total, 1))
}

// AvgTokenLength is the mean rune length of whitespace-separated tokens
// (denominator floored at 1).
func AvgTokenLength(s string) float64 {
	words := strings.Fields(s)
	sum := 0
	for _, w := range words {
		sum += len([]rune(w))
	}
	return float64(sum) / float64(max(len(words), 1))
}

// TokenCount is the number of whitespace-separated tokens.
func TokenCount(s string) int {
	return len(strings.Fields(s))
}

// HasDigit reports whether s contains any decimal digit.
func HasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// HasCurrencySymbol reports whether s contains one of the recognized
// currency symbols.
func HasCurrencySymbol(s string) bool {
	return strings.ContainsAny(s, "$€£¥")
}

// StartsWithArticle reports whether the first word of s is an article.
func StartsWithArticle(s string, lex *lexicon.Lexicon) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	return lex.IsArticle(words[0])
}

// EndsWithStopword reports whether the last word of s is a stop word.
func EndsWithStopword(s string, lex *lexicon.Lexicon) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	return lex.IsStopWord(words[len(words)-1])
}

// MeaningfulWordCount counts tokens that are not stop words.
func MeaningfulWordCount(s string, lex *lexicon.Lexicon) int {
	count := 0
	for _, w := range strings.Fields(s) {
		if !lex.IsStopWord(w) {
			count++
		}
	}
	return count
}

// IsDigitsOrPunct reports whether s contains no letters at all (what remains
// of a line once prices are cut out of a number-only span).
func IsDigitsOrPunct(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
