// Package entree matches candidate text against a reference dictionary of
// known dish names. Match policies run in order (exact, then partial, then
// fuzzy) and the first acceptance wins. Lookups are pure reads; store
// failures are logged and reported as "no match".
package entree

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/agext/levenshtein"

	"github.com/josephvaleri/mlmp/constants"
	"github.com/josephvaleri/mlmp/internal/entity"
	"github.com/josephvaleri/mlmp/internal/lexicon"
)

// Dictionary is the read-only store contract: given normalized query text,
// return the plausible entries to score locally. Implementations may
// prefilter however they like (LIKE, trigram, full scan); the matcher applies
// the match policies.
type Dictionary interface {
	Lookup(ctx context.Context, normalized string) ([]entity.EntreeName, error)
}

// Config holds match thresholds and boosts.
type Config struct {
	ExactBoost          float32
	PartialBoost        float32
	FuzzyBoost          float32
	PartialMinSim       float64 // normalized Levenshtein similarity gate
	FuzzyMinScore       float64 // blended word-level score gate
	FuzzyTokenThreshold float64 // per-token similarity counting toward match ratio
	BatchSize           int     // bound on concurrently outstanding lookups
}

func DefaultConfig() Config {
	return Config{
		ExactBoost:          0.95,
		PartialBoost:        0.8,
		FuzzyBoost:          0.7,
		PartialMinSim:       0.7,
		FuzzyMinScore:       0.6,
		FuzzyTokenThreshold: 0.7,
		BatchSize:           10,
	}
}

type Matcher struct {
	dict   Dictionary
	cfg    Config
	logger *slog.Logger
	params *levenshtein.Params
}

func NewMatcher(dict Dictionary, cfg Config, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BatchSize <= 0 {
		cfg = DefaultConfig()
	}
	return &Matcher{dict: dict, cfg: cfg, logger: logger, params: levenshtein.NewParams()}
}

// Normalize folds case and accents and collapses punctuation, the shared
// normal form for dictionary keys and queries.
func Normalize(s string) string {
	return strings.Join(lexicon.Tokens(s), " ")
}

// Lookup returns the best dictionary match for text, or nil when nothing
// clears a policy gate. A store failure is logged and treated as no match;
// it never propagates to extraction.
func (m *Matcher) Lookup(ctx context.Context, text string) *entity.EntreeMatch {
	query := Normalize(text)
	if query == "" || m.dict == nil {
		return nil
	}

	entries, err := m.dict.Lookup(ctx, query)
	if err != nil {
		m.logger.Warn("entree.lookup.store_error", "query", query, "error", err)
		return nil
	}

	if match := m.matchExact(query, entries); match != nil {
		return match
	}
	if match := m.matchPartial(query, entries); match != nil {
		return match
	}
	return m.matchFuzzy(query, entries)
}

// LookupBatch resolves many queries while keeping at most BatchSize lookups
// outstanding. Results align with the input slice; failed or unmatched
// queries yield nil entries.
func (m *Matcher) LookupBatch(ctx context.Context, texts []string) []*entity.EntreeMatch {
	results := make([]*entity.EntreeMatch, len(texts))
	for start := 0; start < len(texts); start += m.cfg.BatchSize {
		end := min(start+m.cfg.BatchSize, len(texts))
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = m.Lookup(ctx, texts[i])
			}(i)
		}
		wg.Wait()
	}
	return results
}

func (m *Matcher) matchExact(query string, entries []entity.EntreeName) *entity.EntreeMatch {
	for _, e := range entries {
		if query == Normalize(e.Name) || query == e.Normalized {
			return &entity.EntreeMatch{
				Name:       e.Name,
				Normalized: e.Normalized,
				Category:   e.Category,
				Boost:      m.cfg.ExactBoost,
				Type:       constants.MatchExact,
			}
		}
	}
	return nil
}

// matchPartial accepts substring containment in either direction (synonyms
// included), scored by normalized Levenshtein similarity.
func (m *Matcher) matchPartial(query string, entries []entity.EntreeName) *entity.EntreeMatch {
	var best *entity.EntreeMatch
	bestSim := m.cfg.PartialMinSim
	for _, e := range entries {
		for _, variant := range append([]string{e.Normalized}, e.Synonyms...) {
			v := Normalize(variant)
			if v == "" {
				continue
			}
			if !strings.Contains(query, v) && !strings.Contains(v, query) {
				continue
			}
			sim := levenshtein.Similarity(query, v, m.params)
			if sim > bestSim {
				bestSim = sim
				best = &entity.EntreeMatch{
					Name:       e.Name,
					Normalized: e.Normalized,
					Category:   e.Category,
					Boost:      m.cfg.PartialBoost,
					Type:       constants.MatchPartial,
				}
			}
		}
	}
	return best
}

// matchFuzzy blends word-level best-match similarity (weight 0.7) with the
// fraction of query tokens whose best match clears the per-token threshold
// (weight 0.3).
func (m *Matcher) matchFuzzy(query string, entries []entity.EntreeName) *entity.EntreeMatch {
	queryToks := strings.Fields(query)
	if len(queryToks) == 0 {
		return nil
	}

	var best *entity.EntreeMatch
	bestScore := m.cfg.FuzzyMinScore
	for _, e := range entries {
		entryToks := strings.Fields(e.Normalized)
		if len(entryToks) == 0 {
			continue
		}
		var simSum float64
		matched := 0
		for _, qt := range queryToks {
			tokBest := 0.0
			for _, et := range entryToks {
				if sim := levenshtein.Similarity(qt, et, m.params); sim > tokBest {
					tokBest = sim
				}
			}
			simSum += tokBest
			if tokBest > m.cfg.FuzzyTokenThreshold {
				matched++
			}
		}
		avg := simSum / float64(len(queryToks))
		ratio := float64(matched) / float64(len(queryToks))
		score := 0.7*avg + 0.3*ratio
		if score > bestScore {
			bestScore = score
			best = &entity.EntreeMatch{
				Name:       e.Name,
				Normalized: e.Normalized,
				Category:   e.Category,
				Boost:      m.cfg.FuzzyBoost,
				Type:       constants.MatchFuzzy,
			}
		}
	}
	return best
}
