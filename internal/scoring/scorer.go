// Package scoring computes the 0-1 confidence for candidate feature vectors,
// in heuristic mode by default and in trained mode whenever a valid cached
// weight mapping from the external trainer is available.
package scoring

import (
	"context"
	"log/slog"

	"github.com/josephvaleri/mlmp/internal/entity"
)

// Scorer selects between heuristic and trained mode per call, based on the
// weight cache snapshot. A nil cache pins heuristic mode.
type Scorer struct {
	cache  *WeightCache
	logger *slog.Logger
}

func NewScorer(cache *WeightCache, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{cache: cache, logger: logger}
}

// Score computes the confidence for one candidate. When the cached weights
// are stale the call scores heuristically and triggers a background refresh;
// it never blocks and never fails.
func (s *Scorer) Score(ctx context.Context, f entity.CandidateFeatures, match *entity.EntreeMatch) float32 {
	if s.cache == nil {
		return Heuristic(f, match)
	}
	weights, valid := s.cache.Snapshot()
	if !valid {
		s.cache.TriggerRefresh(ctx)
	}
	if valid && len(weights) > 0 {
		return Trained(f, match, weights)
	}
	return Heuristic(f, match)
}
