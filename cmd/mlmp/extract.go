package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/josephvaleri/mlmp/internal/common"
	"github.com/josephvaleri/mlmp/internal/entree"
	"github.com/josephvaleri/mlmp/internal/export"
	"github.com/josephvaleri/mlmp/internal/extractor"
	"github.com/josephvaleri/mlmp/internal/header"
	"github.com/josephvaleri/mlmp/internal/lexicon"
	processor "github.com/josephvaleri/mlmp/internal/pipeline"
	"github.com/josephvaleri/mlmp/internal/repository"
	"github.com/josephvaleri/mlmp/internal/scoring"
)

var (
	extractJSON    bool
	extractXLSX    string
	extractMax     int
	extractDictDB  string
	extractLexicon string
)

var extractCmd = &cobra.Command{
	Use:   "extract <pagedump.json>",
	Short: "Extract ranked dish-name candidates from a page dump",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "emit candidates as JSON")
	extractCmd.Flags().StringVar(&extractXLSX, "xlsx", "", "write candidates to an XLSX workbook at this path")
	extractCmd.Flags().IntVar(&extractMax, "max", 0, "per-page candidate cap (0 = config default)")
	extractCmd.Flags().StringVar(&extractDictDB, "dict", "", "sqlite dictionary path for match boosts")
	extractCmd.Flags().StringVar(&extractLexicon, "lexicon", "", "lexicon YAML override")
	rootCmd.AddCommand(extractCmd)
}

func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		path = common.LoadConfig().Lexicon.Path
	}
	if path == "" {
		return lexicon.Default(), nil
	}
	return lexicon.LoadFile(path)
}

// buildExtractor wires the extraction core for CLI use: embedded or override
// lexicon, optional sqlite dictionary, optional trainer-backed scorer.
func buildExtractor(cfg *common.Config, lexPath, dictPath string, logger *slog.Logger) (*extractor.Extractor, func(), error) {
	lex, err := loadLexicon(lexPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load lexicon: %w", err)
	}

	cleanup := func() {}
	var matcher *entree.Matcher
	if dictPath != "" {
		dict, err := repository.OpenSQLiteDictionary(context.Background(), dictPath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open dictionary: %w", err)
		}
		cleanup = func() { dict.Close() }
		matcher = entree.NewMatcher(dict, entree.DefaultConfig(), logger)
	}

	var cache *scoring.WeightCache
	if cfg.Trainer.URL != "" {
		trainer, err := scoring.NewTrainerClient(cfg.Trainer.URL, cfg.Trainer.Timeout, logger)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("trainer client: %w", err)
		}
		cache = scoring.NewWeightCache(cfg.Trainer.CacheTTL, trainer.FetchWeights, logger)
	}

	exCfg := extractor.DefaultConfig()
	exCfg.MaxCandidates = cfg.Extractor.MaxCandidates
	exCfg.MinConfidence = cfg.Extractor.MinConfidence
	exCfg.FastPathMinConfidence = cfg.Extractor.FastPathMinConfidence

	det := header.NewDetector(lex, header.DefaultConfig(), logger)
	scorer := scoring.NewScorer(cache, logger)
	return extractor.New(lex, det, matcher, scorer, exCfg, logger), cleanup, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := common.LoadConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ex, cleanup, err := buildExtractor(cfg, extractLexicon, extractDictDB, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	max := cfg.Extractor.MaxCandidates
	if extractMax > 0 {
		max = extractMax
	}
	proc := processor.NewProcessor(ex, nil, max, logger)
	res, err := proc.ProcessDump(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if extractXLSX != "" {
		out, err := export.CandidatesWorkbook(res.Candidates)
		if err != nil {
			return err
		}
		if err := os.WriteFile(extractXLSX, out, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d candidates)\n", extractXLSX, len(res.Candidates))
		return nil
	}

	if extractJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Candidates)
	}

	if len(res.Candidates) == 0 {
		fmt.Println("no candidates found")
		return nil
	}
	for _, c := range res.Candidates {
		line := fmt.Sprintf("p%-3d %.3f  %s", c.PageNumber, c.Confidence, c.Text)
		if c.HeaderContext != "" {
			line += fmt.Sprintf("  [%s]", c.HeaderContext)
		}
		if c.Match != nil {
			line += fmt.Sprintf("  (%s %s)", c.Match.Type, c.Match.Name)
		}
		fmt.Println(line)
	}
	return nil
}
