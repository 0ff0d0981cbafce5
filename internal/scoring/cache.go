package scoring

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// FetchFunc pulls a fresh weight mapping from the external trainer.
type FetchFunc func(ctx context.Context) (map[string]float64, error)

// WeightCache holds the trained-weight mapping with a fixed validity window.
// Reads never block on a refresh: Snapshot returns whatever is cached, and
// TriggerRefresh runs the fetch in the background with last-writer-wins
// semantics. A scoring call that finds the cache stale uses heuristic mode
// for that call; worst case is weights one refresh interval old.
type WeightCache struct {
	mu        sync.RWMutex
	weights   map[string]float64
	fetchedAt time.Time

	ttl        time.Duration
	fetch      FetchFunc
	refreshing atomic.Bool
	logger     *slog.Logger
}

func NewWeightCache(ttl time.Duration, fetch FetchFunc, logger *slog.Logger) *WeightCache {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &WeightCache{ttl: ttl, fetch: fetch, logger: logger}
}

// Snapshot returns the cached mapping and whether it is still inside the
// validity window. The map must be treated as read-only.
func (c *WeightCache) Snapshot() (map[string]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.weights == nil {
		return nil, false
	}
	return c.weights, time.Since(c.fetchedAt) < c.ttl
}

// Set stores a mapping directly (used by tests and by callers that obtain
// weights out of band).
func (c *WeightCache) Set(weights map[string]float64) {
	c.mu.Lock()
	c.weights = weights
	c.fetchedAt = time.Now()
	c.mu.Unlock()
}

// TriggerRefresh starts a background fetch if the cache is stale and no fetch
// is already in flight. It never blocks and never surfaces an error: a failed
// refresh is logged and the scorer continues in heuristic mode.
func (c *WeightCache) TriggerRefresh(ctx context.Context) {
	if c.fetch == nil {
		return
	}
	if _, valid := c.Snapshot(); valid {
		return
	}
	if !c.refreshing.CompareAndSwap(false, true) {
		return
	}
	// The fetch outlives the scoring call that triggered it, so it must not
	// die with that call's context.
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer c.refreshing.Store(false)
		weights, err := c.fetch(ctx)
		if err != nil {
			c.logger.Warn("scoring.weights.refresh_failed", "error", err)
			return
		}
		c.Set(weights)
		c.logger.Info("scoring.weights.refreshed", "features", len(weights))
	}()
}
