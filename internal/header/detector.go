// Package header classifies menu section titles and answers positional
// queries like "is this line under an entree header".
package header

import (
	"log/slog"
	"math"
	"strings"

	"github.com/josephvaleri/mlmp/internal/entity"
	"github.com/josephvaleri/mlmp/internal/lexicon"
	"github.com/josephvaleri/mlmp/internal/price"
	"github.com/josephvaleri/mlmp/internal/textutil"
)

// Config holds the detection thresholds and penalties. Defaults mirror the
// tuned production values; they are fields rather than constants so tests can
// pin individual rules.
type Config struct {
	MinScore         float64 // keep lines scoring above this
	MaxDistance      int     // header-above search window, in lines
	PricePenalty     float64
	WordCountPenalty float64 // applied above MaxMeaningfulWords
	FoodNounPenalty  float64
	MaxMeaningful    int
}

func DefaultConfig() Config {
	return Config{
		MinScore:         0.5,
		MaxDistance:      10,
		PricePenalty:     0.5,
		WordCountPenalty: 0.3,
		FoodNounPenalty:  0.4,
		MaxMeaningful:    4,
	}
}

type Detector struct {
	lex    *lexicon.Lexicon
	cfg    Config
	logger *slog.Logger
}

func NewDetector(lex *lexicon.Lexicon, cfg Config, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	if lex == nil {
		lex = lexicon.Default()
	}
	if cfg.MaxDistance <= 0 {
		cfg = DefaultConfig()
	}
	return &Detector{lex: lex, cfg: cfg, logger: logger}
}

// Detect scores every non-blank line against the header vocabulary and
// returns the lines whose penalized score exceeds the threshold, in line
// order.
func (d *Detector) Detect(lines []entity.OcrLine) []entity.SectionHeader {
	var headers []entity.SectionHeader
	for i, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		score := d.Score(text)
		if score > d.cfg.MinScore {
			headers = append(headers, entity.SectionHeader{
				Text:       lexicon.Fold(text),
				Confidence: float32(score),
				LineIndex:  i,
			})
		}
	}
	if len(headers) > 0 {
		d.logger.Debug("header.detect", "lines", len(lines), "headers", len(headers))
	}
	return headers
}

// Score computes the penalized header confidence for one line: the maximum
// cosine similarity between the line and any header-vocabulary entry, minus
// penalties for price content, verbosity, and food nouns.
func (d *Detector) Score(text string) float64 {
	lineVec := termFreq(lexicon.Tokens(text))
	if len(lineVec) == 0 {
		return 0
	}

	best := 0.0
	for _, entry := range d.lex.Headers {
		sim := cosine(lineVec, termFreq(lexicon.Tokens(entry)))
		if sim > best {
			best = sim
		}
	}

	if price.ContainsAny(text) {
		best -= d.cfg.PricePenalty
	}
	if textutil.MeaningfulWordCount(text, d.lex) > d.cfg.MaxMeaningful {
		best -= d.cfg.WordCountPenalty
	}
	if d.lex.HasFoodNoun(text) {
		best -= d.cfg.FoodNounPenalty
	}
	return best
}

// NearestAbove returns the closest header strictly above index within
// maxDistance lines, or nil.
func NearestAbove(index int, headers []entity.SectionHeader, maxDistance int) *entity.SectionHeader {
	var nearest *entity.SectionHeader
	for i := range headers {
		h := &headers[i]
		if h.LineIndex >= index {
			break
		}
		if index-h.LineIndex <= maxDistance {
			nearest = h
		}
	}
	return nearest
}

// IsUnderEntree reports whether the nearest header above index names an
// entree category (entrees, secondi, plats principaux, ...). False when no
// header precedes the line within the window.
func (d *Detector) IsUnderEntree(index int, headers []entity.SectionHeader) bool {
	h := NearestAbove(index, headers, d.cfg.MaxDistance)
	if h == nil {
		return false
	}
	return d.lex.IsEntreeCategory(h.Text)
}

// MaxDistance exposes the configured header-above window.
func (d *Detector) MaxDistance() int { return d.cfg.MaxDistance }

// IsHeaderText reports whether text on its own would qualify as a section
// header. Used to reject split parts that absorbed a header word from a
// merged line.
func (d *Detector) IsHeaderText(text string) bool {
	return d.Score(text) > d.cfg.MinScore
}

func termFreq(tokens []string) map[string]float64 {
	if len(tokens) == 0 {
		return nil
	}
	vec := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		vec[t]++
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, na, nb float64
	for k, va := range a {
		na += va * va
		if vb, ok := b[k]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		nb += vb * vb
	}
	if dot == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
