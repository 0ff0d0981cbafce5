package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/josephvaleri/mlmp/internal/entity"
	"github.com/josephvaleri/mlmp/internal/entree"
	"github.com/josephvaleri/mlmp/internal/repository"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage the local entree-name dictionary",
	Long: `Manage the sqlite dictionary of known dish names.

The dictionary backs the matcher's exact/partial/fuzzy boosts. Seed files are
JSON or YAML lists of entries:

  [{"name": "Lobster Newburg", "category": "seafood", "synonyms": ["lobster a la newburg"]}]

Normalized forms are computed on load; seed files never need to carry them.`,
}

var dictInitCmd = &cobra.Command{
	Use:   "init <dict.db>",
	Short: "Create an empty dictionary database",
	Args:  cobra.ExactArgs(1),
	RunE:  runDictInit,
}

var dictLoadCmd = &cobra.Command{
	Use:   "load <dict.db> <entries.json|yaml>",
	Short: "Load dish names from a seed file",
	Args:  cobra.ExactArgs(2),
	RunE:  runDictLoad,
}

var dictLookupCmd = &cobra.Command{
	Use:   "lookup <dict.db> <text>",
	Short: "Run a matcher lookup against the dictionary",
	Args:  cobra.ExactArgs(2),
	RunE:  runDictLookup,
}

func init() {
	dictCmd.AddCommand(dictInitCmd, dictLoadCmd, dictLookupCmd)
	rootCmd.AddCommand(dictCmd)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func runDictInit(cmd *cobra.Command, args []string) error {
	dict, err := repository.OpenSQLiteDictionary(cmd.Context(), args[0], quietLogger())
	if err != nil {
		return err
	}
	defer dict.Close()
	fmt.Printf("dictionary ready at %s\n", args[0])
	return nil
}

func readSeedFile(path string) ([]entity.EntreeName, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []entity.EntreeName
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &entries)
	default:
		err = json.Unmarshal(raw, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i := range entries {
		entries[i].Normalized = entree.Normalize(entries[i].Name)
	}
	return entries, nil
}

func runDictLoad(cmd *cobra.Command, args []string) error {
	entries, err := readSeedFile(args[1])
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("seed file %s holds no entries", args[1])
	}

	dict, err := repository.OpenSQLiteDictionary(cmd.Context(), args[0], quietLogger())
	if err != nil {
		return err
	}
	defer dict.Close()

	n, err := dict.Upsert(cmd.Context(), entries)
	if err != nil {
		return err
	}
	total, err := dict.Count(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("loaded %d entries (%d total)\n", n, total)
	return nil
}

func runDictLookup(cmd *cobra.Command, args []string) error {
	dict, err := repository.OpenSQLiteDictionary(cmd.Context(), args[0], quietLogger())
	if err != nil {
		return err
	}
	defer dict.Close()

	matcher := entree.NewMatcher(dict, entree.DefaultConfig(), quietLogger())
	match := matcher.Lookup(context.Background(), args[1])
	if match == nil {
		fmt.Println("no match")
		return nil
	}
	fmt.Printf("%s  %s (boost %.2f)\n", match.Type, match.Name, match.Boost)
	if match.Category != "" {
		fmt.Printf("category: %s\n", match.Category)
	}
	return nil
}
