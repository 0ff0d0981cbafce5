package scoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/josephvaleri/mlmp/constants"
	"github.com/josephvaleri/mlmp/internal/entity"
)

// featureGrid enumerates corner-ish feature vectors for bounds checks.
func featureGrid() []entity.CandidateFeatures {
	return []entity.CandidateFeatures{
		{},
		{TokenCount: 3, TitleCase: true, PriceOnLine: true, UnderEntreeHeader: true, AllCaps: true, FontSizeRatio: 2.0, LetterRatio: 1, NextLineDescription: true, PriceNearby: true},
		{TokenCount: 12, HasDigit: true, HasCurrency: true, PunctuationDensity: 0.9, LetterRatio: 0.1, FontSizeRatio: 0.3},
		{TokenCount: 1, LetterRatio: 0.99, UppercaseRatio: 1},
	}
}

func TestHeuristicBounds(t *testing.T) {
	match := &entity.EntreeMatch{Boost: 0.95, Type: constants.MatchExact}
	for _, f := range featureGrid() {
		for _, m := range []*entity.EntreeMatch{nil, match} {
			got := Heuristic(f, m)
			if got < 0 || got > 1 {
				t.Errorf("Heuristic(%+v) = %v out of [0,1]", f, got)
			}
		}
	}
}

func TestTrainedBounds(t *testing.T) {
	weights := map[string]float64{
		constants.FeatTokenCount:   5,
		constants.FeatAllCaps:      -40,
		constants.FeatLetterRatio:  12.5,
		constants.FeatHasCurrency:  -3,
	}
	for _, f := range featureGrid() {
		got := Trained(f, nil, weights)
		if got < 0 || got > 1 {
			t.Errorf("Trained(%+v) = %v out of [0,1]", f, got)
		}
	}
}

func TestHeuristicSignals(t *testing.T) {
	base := Heuristic(entity.CandidateFeatures{TokenCount: 3, LetterRatio: 1}, nil)
	boosted := Heuristic(entity.CandidateFeatures{TokenCount: 3, LetterRatio: 1, UnderEntreeHeader: true}, nil)
	if boosted <= base {
		t.Errorf("entree-header context should raise the score: %v <= %v", boosted, base)
	}
	penalized := Heuristic(entity.CandidateFeatures{TokenCount: 3, LetterRatio: 1, HasDigit: true}, nil)
	if penalized >= base {
		t.Errorf("digits should lower the score: %v >= %v", penalized, base)
	}
	matched := Heuristic(entity.CandidateFeatures{TokenCount: 3, LetterRatio: 1}, &entity.EntreeMatch{Boost: 0.8})
	if matched <= base {
		t.Errorf("dictionary boost should raise the score: %v <= %v", matched, base)
	}
}

func TestScorerFallsBackWithoutWeights(t *testing.T) {
	f := entity.CandidateFeatures{TokenCount: 3, TitleCase: true, LetterRatio: 1}

	s := NewScorer(nil, nil)
	if got, want := s.Score(context.Background(), f, nil), Heuristic(f, nil); got != want {
		t.Errorf("nil cache: Score = %v, want heuristic %v", got, want)
	}

	cache := NewWeightCache(time.Minute, nil, nil)
	s = NewScorer(cache, nil)
	if got, want := s.Score(context.Background(), f, nil), Heuristic(f, nil); got != want {
		t.Errorf("empty cache: Score = %v, want heuristic %v", got, want)
	}
}

func TestScorerUsesValidWeights(t *testing.T) {
	f := entity.CandidateFeatures{TokenCount: 3, TitleCase: true, LetterRatio: 1}
	weights := map[string]float64{constants.FeatTitleCase: 2}

	cache := NewWeightCache(time.Minute, nil, nil)
	cache.Set(weights)
	s := NewScorer(cache, nil)
	if got, want := s.Score(context.Background(), f, nil), Trained(f, nil, weights); got != want {
		t.Errorf("Score = %v, want trained %v", got, want)
	}
}

func TestRefreshFailureNeverPropagates(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	fetch := func(ctx context.Context) (map[string]float64, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil, errors.New("trainer unreachable")
	}
	cache := NewWeightCache(time.Minute, fetch, nil)
	s := NewScorer(cache, nil)

	f := entity.CandidateFeatures{TokenCount: 3, LetterRatio: 1}
	got := s.Score(context.Background(), f, nil)
	if want := Heuristic(f, nil); got != want {
		t.Errorf("Score during failed refresh = %v, want heuristic %v", got, want)
	}

	// The refresh goroutine settles without affecting later calls.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if !cache.refreshing.Load() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if got2 := s.Score(context.Background(), f, nil); got2 != got {
		t.Errorf("score changed after failed refresh: %v vs %v", got2, got)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls == 0 {
		t.Error("expected at least one fetch attempt")
	}
}

func TestRefreshSurvivesCallerCancel(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (map[string]float64, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return map[string]float64{"base": 0.2}, nil
	}
	cache := NewWeightCache(time.Minute, fetch, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cache.TriggerRefresh(ctx)
	<-started
	cancel()
	close(release)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if weights, valid := cache.Snapshot(); valid && len(weights) == 1 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("background refresh was aborted by the scoring call's cancellation")
}

func TestWeightCacheExpiry(t *testing.T) {
	cache := NewWeightCache(10*time.Millisecond, nil, nil)
	cache.Set(map[string]float64{"x": 1})
	if _, valid := cache.Snapshot(); !valid {
		t.Fatal("fresh cache should be valid")
	}
	time.Sleep(20 * time.Millisecond)
	if _, valid := cache.Snapshot(); valid {
		t.Fatal("cache should be stale after the validity window")
	}
}

func TestTrainerClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"version": 3, "weights": {"title_case": 1.5, "has_digit": -2}}`))
	}))
	defer srv.Close()

	tc, err := NewTrainerClient(srv.URL, time.Second, nil)
	if err != nil {
		t.Fatalf("NewTrainerClient: %v", err)
	}
	weights, err := tc.FetchWeights(context.Background())
	if err != nil {
		t.Fatalf("FetchWeights: %v", err)
	}
	if weights[constants.FeatTitleCase] != 1.5 || weights[constants.FeatHasDigit] != -2 {
		t.Errorf("unexpected weights: %v", weights)
	}
}

func TestTrainerClientRejectsBadPayload(t *testing.T) {
	cases := map[string]string{
		"missing weights":  `{"version": 1}`,
		"non-numeric":      `{"weights": {"title_case": "big"}}`,
		"unknown property": `{"weights": {}, "extra": true}`,
	}
	for name, body := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		tc, err := NewTrainerClient(srv.URL, time.Second, nil)
		if err != nil {
			t.Fatalf("NewTrainerClient: %v", err)
		}
		if _, err := tc.FetchWeights(context.Background()); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
		srv.Close()
	}
}
