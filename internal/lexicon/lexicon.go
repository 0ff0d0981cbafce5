// Package lexicon loads the versioned multilingual vocabulary used across the
// extraction core: header words, blacklist terms, stop words, descriptive
// words, entree-category keywords, dish anchors. One resource, loaded once,
// passed to every component that needs it.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/josephvaleri/mlmp/constants"
)

//go:embed lexicon.yaml
var embedded []byte

// Lexicon is the parsed vocabulary resource plus precomputed folded token
// lists for word-boundary phrase matching.
type Lexicon struct {
	Version        int                  `yaml:"version"`
	Languages      []constants.Language `yaml:"languages"`
	Headers        []string             `yaml:"headers"`
	EntreeHeaders  []string             `yaml:"entree_headers"`
	Blacklist      []string             `yaml:"blacklist"`
	StopWords      []string             `yaml:"stop_words"`
	Articles       []string             `yaml:"articles"`
	LeadingRejects []string             `yaml:"leading_rejects"`
	Descriptive    []string             `yaml:"descriptive"`
	FoodNouns      []string             `yaml:"food_nouns"`
	DishAnchors    []string             `yaml:"dish_anchors"`
	NameSuffixes   []string             `yaml:"name_suffixes"`
	CurrencyWords  []string             `yaml:"currency_words"`
	CompoundMarker []string             `yaml:"compound_markers"`

	headerPhrases   [][]string
	entreePhrases   [][]string
	blacklistPhr    [][]string
	descriptivePhr  [][]string
	foodNounPhr     [][]string
	anchorPhr       [][]string
	suffixSet       map[string]struct{}
	stopSet         map[string]struct{}
	articleSet      map[string]struct{}
	leadingSet      map[string]struct{}
	currencySet     map[string]struct{}
	compoundSet     map[string]struct{}
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Default returns the embedded lexicon, parsed once.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		defaultLex, defaultErr = Parse(embedded)
		if defaultErr != nil {
			// The embedded resource ships with the binary; failing to parse
			// it is a build defect, not a runtime condition.
			panic(fmt.Sprintf("lexicon: embedded resource: %v", defaultErr))
		}
	})
	return defaultLex
}

// LoadFile parses a lexicon override from disk.
func LoadFile(path string) (*Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML lexicon document and builds the folded lookup indexes.
func Parse(raw []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(raw, &lex); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	if lex.Version < 1 {
		return nil, fmt.Errorf("lexicon missing version")
	}
	lex.headerPhrases = phraseTokens(lex.Headers)
	lex.entreePhrases = phraseTokens(lex.EntreeHeaders)
	lex.blacklistPhr = phraseTokens(lex.Blacklist)
	lex.descriptivePhr = phraseTokens(lex.Descriptive)
	lex.foodNounPhr = phraseTokens(lex.FoodNouns)
	lex.anchorPhr = phraseTokens(lex.DishAnchors)
	lex.suffixSet = foldedSet(lex.NameSuffixes)
	lex.stopSet = foldedSet(lex.StopWords)
	lex.articleSet = foldedSet(lex.Articles)
	lex.leadingSet = foldedSet(lex.LeadingRejects)
	lex.currencySet = foldedSet(lex.CurrencyWords)
	lex.compoundSet = foldedSet(lex.CompoundMarker)
	return &lex, nil
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases and strips diacritics so "Entrées" matches "entrees".
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Tokens splits folded text into word tokens. Apostrophes and all other
// punctuation act as separators, so "Won Tons" tokenizes apart from "tea".
func Tokens(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func phraseTokens(phrases []string) [][]string {
	out := make([][]string, 0, len(phrases))
	for _, p := range phrases {
		if toks := Tokens(p); len(toks) > 0 {
			out = append(out, toks)
		}
	}
	return out
}

func foldedSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		for _, tok := range Tokens(w) {
			set[tok] = struct{}{}
		}
	}
	return set
}

// containsPhrase reports whether phrase occurs as a consecutive token
// subsequence of text tokens. Word-boundary by construction: "tea" never
// matches inside "Won Tons".
func containsPhrase(textToks []string, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(textToks) {
		return false
	}
outer:
	for i := 0; i+len(phrase) <= len(textToks); i++ {
		for j, p := range phrase {
			if textToks[i+j] != p {
				continue outer
			}
		}
		return true
	}
	return false
}

func matchesAny(text string, phrases [][]string) bool {
	toks := Tokens(text)
	for _, p := range phrases {
		if containsPhrase(toks, p) {
			return true
		}
	}
	return false
}

// ContainsHeaderWord reports whether text contains any header-vocabulary
// phrase at word boundaries.
func (l *Lexicon) ContainsHeaderWord(text string) bool { return matchesAny(text, l.headerPhrases) }

// IsBlacklisted reports whether text contains a disallowed category phrase.
func (l *Lexicon) IsBlacklisted(text string) bool { return matchesAny(text, l.blacklistPhr) }

// IsEntreeCategory reports whether header text names an entree section.
func (l *Lexicon) IsEntreeCategory(text string) bool { return matchesAny(text, l.entreePhrases) }

// HasDescriptiveWord reports whether text contains description vocabulary.
func (l *Lexicon) HasDescriptiveWord(text string) bool { return matchesAny(text, l.descriptivePhr) }

// HasFoodNoun reports whether text contains a common food noun.
func (l *Lexicon) HasFoodNoun(text string) bool { return matchesAny(text, l.foodNounPhr) }

// HasDishAnchor reports whether text contains a dish-noun anchor.
func (l *Lexicon) HasDishAnchor(text string) bool { return matchesAny(text, l.anchorPhr) }

// IsStopWord reports whether the single word is a stop word.
func (l *Lexicon) IsStopWord(word string) bool {
	_, ok := l.stopSet[Fold(strings.TrimSpace(word))]
	return ok
}

// IsArticle reports whether the single word is an article.
func (l *Lexicon) IsArticle(word string) bool {
	_, ok := l.articleSet[Fold(strings.TrimSpace(word))]
	return ok
}

// IsLeadingReject reports whether a dish name may not begin with word.
func (l *Lexicon) IsLeadingReject(word string) bool {
	_, ok := l.leadingSet[Fold(strings.TrimSpace(word))]
	return ok
}

// IsCurrencyWord reports whether word spells a currency ("usd", "euros", ...).
func (l *Lexicon) IsCurrencyWord(word string) bool {
	_, ok := l.currencySet[Fold(strings.TrimSpace(word))]
	return ok
}

// IsCompoundMarker reports whether word terminates one item of a merged
// multi-dish line.
func (l *Lexicon) IsCompoundMarker(word string) bool {
	_, ok := l.compoundSet[Fold(strings.TrimSpace(word))]
	return ok
}

// HasNameSuffix reports whether text ends in a business-name suffix
// ("... Cafe", "... Trattoria").
func (l *Lexicon) HasNameSuffix(text string) bool {
	toks := Tokens(text)
	if len(toks) == 0 {
		return false
	}
	_, ok := l.suffixSet[toks[len(toks)-1]]
	return ok
}
