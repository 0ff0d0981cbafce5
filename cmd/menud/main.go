// menud watches inbox directories for OCR page dumps, runs extraction on
// each, and persists the ranked candidates for feedback review.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/josephvaleri/mlmp/internal/async"
	"github.com/josephvaleri/mlmp/internal/common"
	"github.com/josephvaleri/mlmp/internal/entree"
	"github.com/josephvaleri/mlmp/internal/extractor"
	"github.com/josephvaleri/mlmp/internal/header"
	"github.com/josephvaleri/mlmp/internal/ingest"
	"github.com/josephvaleri/mlmp/internal/lexicon"
	processor "github.com/josephvaleri/mlmp/internal/pipeline"
	"github.com/josephvaleri/mlmp/internal/repository"
	"github.com/josephvaleri/mlmp/internal/scoring"
)

func main() {
	// Logger
	zl, _ := zap.NewProduction()
	defer zl.Sync()
	log := zl.Sugar()
	// Internals speak slog; JSON output keeps the two streams uniform.
	slogger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	// Env
	cfg := common.LoadConfig()
	if err := cfg.ValidateDaemon(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB pool
	pool, err := repository.Open(ctx, repository.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, slogger)
	if err != nil {
		log.Fatalf("creating DB pool: %v", err)
	}
	defer repository.Close(pool, slogger)

	if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, slogger); err != nil {
		log.Fatalf("DB health failed: %v", err)
	}
	log.Infow("DB health OK")

	if err := repository.Migrate(ctx, pool, slogger); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Lexicon (embedded unless overridden)
	lex := lexicon.Default()
	if cfg.Lexicon.Path != "" {
		lex, err = lexicon.LoadFile(cfg.Lexicon.Path)
		if err != nil {
			log.Fatalf("load lexicon %s: %v", cfg.Lexicon.Path, err)
		}
	}

	// Extraction core: dictionary-backed matcher, trainer-backed scorer.
	dict := repository.NewDictionaryRepository(pool, slogger)
	matcher := entree.NewMatcher(dict, entree.DefaultConfig(), slogger)

	var cache *scoring.WeightCache
	if cfg.Trainer.URL != "" {
		trainer, err := scoring.NewTrainerClient(cfg.Trainer.URL, cfg.Trainer.Timeout, slogger)
		if err != nil {
			log.Fatalf("trainer client: %v", err)
		}
		cache = scoring.NewWeightCache(cfg.Trainer.CacheTTL, trainer.FetchWeights, slogger)
		cache.TriggerRefresh(ctx)
	} else {
		log.Infow("no trainer endpoint; scoring runs heuristically")
	}

	exCfg := extractor.DefaultConfig()
	exCfg.MaxCandidates = cfg.Extractor.MaxCandidates
	exCfg.MinConfidence = cfg.Extractor.MinConfidence
	exCfg.FastPathMinConfidence = cfg.Extractor.FastPathMinConfidence
	det := header.NewDetector(lex, header.DefaultConfig(), slogger)
	ex := extractor.New(lex, det, matcher, scoring.NewScorer(cache, slogger), exCfg, slogger)

	feedback := repository.NewFeedbackRepository(pool, slogger)
	proc := processor.NewProcessor(ex, feedback, cfg.Extractor.MaxCandidates, slogger)
	queue := async.NewProcessorQueue(proc, slogger)

	// Inbox watcher
	events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       cfg.Ingest.InboxDirs,
		InitialScan: true,
		Debounce:    cfg.Ingest.Debounce,
	}, slogger)
	if err != nil {
		log.Fatalf("watcher: %v", err)
	}
	log.Infof("watching %d inbox dirs", len(cfg.Ingest.InboxDirs))

	shutdown := func() {
		log.Info("shutting down...")
		drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		queue.Shutdown(drainCtx)
		fmt.Println("stopped.")
	}

	for {
		select {
		case <-ctx.Done():
			shutdown()
			return
		case err, ok := <-watchErrs:
			if ok && err != nil {
				log.Errorw("watcher error", "error", err)
			}
		case path, ok := <-events:
			if !ok {
				log.Info("watcher closed")
				shutdown()
				return
			}
			_ = queue.Enqueue(ctx, async.Job{Path: path, SubmittedAt: time.Now()})
		}
	}
}
