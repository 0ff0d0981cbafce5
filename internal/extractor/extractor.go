// Package extractor turns one page of noisy OCR menu lines into a ranked,
// length-capped list of dish-name candidates. Lines run through an ordered
// filter table, then one of three emission paths: an all-caps fast path, a
// visual-hierarchy fast path, or the default split-and-score path.
package extractor

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/josephvaleri/mlmp/internal/entity"
	"github.com/josephvaleri/mlmp/internal/entree"
	"github.com/josephvaleri/mlmp/internal/header"
	"github.com/josephvaleri/mlmp/internal/lexicon"
	"github.com/josephvaleri/mlmp/internal/price"
	"github.com/josephvaleri/mlmp/internal/scoring"
	"github.com/josephvaleri/mlmp/internal/textutil"
)

// Config holds extraction thresholds. The two confidence gates are
// deliberately asymmetric (the fast paths demand more than the default path);
// they are historical tuning values, kept configurable rather than unified.
type Config struct {
	MaxCandidates         int
	MinConfidence         float64 // default-path emission gate
	FastPathMinConfidence float64 // all-caps / hierarchy path gate

	AllCapsBoost           float64 // flat boost on the all-caps path
	AllCapsHierarchyWeight float64 // times hierarchy score, all-caps path
	HierarchyBoostWeight   float64 // times hierarchy score, hierarchy path
	HierarchyMinScore      float64 // entry gate for the hierarchy path

	NameZoneLines   int // "early in document" bound for the name filter
	HeaderLookahead int // lines below a name that may hold its first header
	PriceLookahead  int // lines ahead searched for a nearby price
}

func DefaultConfig() Config {
	return Config{
		MaxCandidates:          10,
		MinConfidence:          0.03,
		FastPathMinConfidence:  0.1,
		AllCapsBoost:           0.4,
		AllCapsHierarchyWeight: 0.3,
		HierarchyBoostWeight:   0.4,
		HierarchyMinScore:      0.5,
		NameZoneLines:          5,
		HeaderLookahead:        5,
		PriceLookahead:         3,
	}
}

type Extractor struct {
	lex     *lexicon.Lexicon
	headers *header.Detector
	matcher *entree.Matcher
	scorer  *scoring.Scorer
	cfg     Config
	logger  *slog.Logger
}

func New(lex *lexicon.Lexicon, headers *header.Detector, matcher *entree.Matcher, scorer *scoring.Scorer, cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if lex == nil {
		lex = lexicon.Default()
	}
	if cfg.MaxCandidates <= 0 {
		cfg = DefaultConfig()
	}
	return &Extractor{lex: lex, headers: headers, matcher: matcher, scorer: scorer, cfg: cfg, logger: logger}
}

// A filterRule drops a whole line before any emission path runs. Ordered;
// first hit wins.
type filterRule struct {
	name string
	drop func(e *Extractor, c *lineContext) bool
}

var filterRules = []filterRule{
	{"blank-or-short", func(_ *Extractor, c *lineContext) bool {
		return len(strings.TrimSpace(c.text)) < 2
	}},
	{"blacklist", func(e *Extractor, c *lineContext) bool {
		return e.lex.IsBlacklisted(c.text)
	}},
	{"section-header", func(_ *Extractor, c *lineContext) bool {
		return c.isHeaderLine(c.index)
	}},
	{"restaurant-name", func(e *Extractor, c *lineContext) bool {
		return e.isRestaurantName(c)
	}},
	{"description", func(e *Extractor, c *lineContext) bool {
		return e.isDescription(c.text, c, c.index)
	}},
}

// Extract processes one page and returns a confidence-sorted candidate list
// capped at maxCandidates (falling back to the configured default when <= 0).
// A well-typed page always yields a (possibly empty) list; degenerate lines
// are skipped, never surfaced as errors.
func (e *Extractor) Extract(ctx context.Context, page entity.OcrPage, maxCandidates int) []entity.Candidate {
	if maxCandidates <= 0 {
		maxCandidates = e.cfg.MaxCandidates
	}
	headers := e.headers.Detect(page.Lines)
	avgHeight, avgGap, avgConf := pageGeometry(page.Lines)

	var out []entity.Candidate
lines:
	for i := range page.Lines {
		c := &lineContext{
			page:      &page,
			index:     i,
			text:      strings.TrimSpace(page.Lines[i].Text),
			headers:   headers,
			avgHeight: avgHeight,
			avgGap:    avgGap,
			avgConf:   avgConf,
		}
		for _, rule := range filterRules {
			if rule.drop(e, c) {
				e.logger.Debug("extract.line_dropped", "rule", rule.name, "line", i)
				continue lines
			}
		}

		if textutil.IsAllCaps(c.text) {
			out = append(out, e.allCapsPath(ctx, c)...)
			continue
		}
		if score := e.hierarchyScore(c); score > e.cfg.HierarchyMinScore {
			out = append(out, e.hierarchyPath(ctx, c, score)...)
			continue
		}
		out = append(out, e.defaultPath(ctx, c)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	e.logger.Debug("extract.page_done",
		"page", page.PageNumber,
		"lines", len(page.Lines),
		"headers", len(headers),
		"candidates", len(out),
	)
	return out
}

// allCapsPath handles fully capitalized lines: strip prices, score, add the
// flat boost plus a share of the hierarchy score. The line is consumed
// whether or not a candidate comes out.
func (e *Extractor) allCapsPath(ctx context.Context, c *lineContext) []entity.Candidate {
	cleaned := price.RemoveAll(c.text)
	if len(cleaned) < 3 {
		return nil
	}
	cand, base := e.buildCandidate(ctx, c, cleaned)
	boosted := float64(base) + e.cfg.AllCapsBoost + e.cfg.AllCapsHierarchyWeight*e.hierarchyScore(c)
	cand.Confidence = clampConfidence(boosted)
	cand.Features.Confidence = cand.Confidence
	if float64(cand.Confidence) > e.cfg.FastPathMinConfidence && IsValidEntreeName(cleaned, e.lex) {
		return []entity.Candidate{cand}
	}
	return nil
}

// hierarchyPath handles visually prominent lines. Compound multi-dish lines
// emit one candidate per sub-item; otherwise the whole line becomes a single
// boosted candidate.
func (e *Extractor) hierarchyPath(ctx context.Context, c *lineContext, score float64) []entity.Candidate {
	parts := splitCompoundMarkers(e, c.text)
	if parts == nil {
		parts = []string{c.text}
	}
	var out []entity.Candidate
	for _, part := range parts {
		cleaned := price.RemoveAll(part)
		if len(cleaned) < 3 {
			continue
		}
		cand, base := e.buildCandidate(ctx, c, cleaned)
		cand.Confidence = clampConfidence(float64(base) + e.cfg.HierarchyBoostWeight*score)
		cand.Features.Confidence = cand.Confidence
		if float64(cand.Confidence) > e.cfg.FastPathMinConfidence && IsValidEntreeName(cleaned, e.lex) {
			out = append(out, cand)
		}
	}
	return out
}

// defaultPath splits the line into parts, filters each, and emits whatever
// scores above the (low) default gate.
func (e *Extractor) defaultPath(ctx context.Context, c *lineContext) []entity.Candidate {
	var out []entity.Candidate
	for _, part := range e.splitLine(c.text) {
		cleaned := price.RemoveAll(part)
		if textutil.IsDigitsOrPunct(cleaned) {
			continue
		}
		if e.lex.IsBlacklisted(cleaned) || e.isDescriptionClause(part, cleaned) {
			continue
		}
		// A merged line can leave a header word or the venue's own name
		// inside the name span; the per-line filters never saw the part.
		if e.headers.IsHeaderText(cleaned) || e.isBusinessName(cleaned) {
			continue
		}
		cand, base := e.buildCandidate(ctx, c, cleaned)
		cand.Confidence = base
		cand.Features.Confidence = base
		if float64(cand.Confidence) > e.cfg.MinConfidence && IsValidEntreeName(cleaned, e.lex) {
			out = append(out, cand)
		}
	}
	return out
}

// buildCandidate assembles the candidate record shared by all paths and
// returns it with its unboosted base confidence.
func (e *Extractor) buildCandidate(ctx context.Context, c *lineContext, cleaned string) (entity.Candidate, float32) {
	features := e.buildFeatures(c, cleaned)
	var match *entity.EntreeMatch
	if e.matcher != nil {
		match = e.matcher.Lookup(ctx, cleaned)
	}
	base := e.scorer.Score(ctx, features, match)

	var box *entity.BoundingBox
	if b := c.line().Box; b.Width > 0 || b.Height > 0 {
		bb := b
		box = &bb
	}
	headerCtx := ""
	if h := header.NearestAbove(c.index, c.headers, e.headers.MaxDistance()); h != nil {
		headerCtx = h.Text
	}
	return entity.Candidate{
		ID:            uuid.New(),
		PageNumber:    c.page.PageNumber,
		Text:          cleaned,
		Box:           box,
		HeaderContext: headerCtx,
		Match:         match,
		Features:      features,
		Confidence:    base,
	}, base
}

func clampConfidence(v float64) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return float32(v)
}
