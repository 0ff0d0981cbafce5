package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/josephvaleri/mlmp/internal/common"
	"github.com/josephvaleri/mlmp/internal/export"
	"github.com/josephvaleri/mlmp/internal/repository"
)

var (
	exportOut   string
	exportSince string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export labeled feedback as an XLSX workbook",
	Long: `Export the labeled training corpus from the feedback store.

Reads DB_URL from the environment. --since bounds the export to labels
recorded on or after the given date (YYYY-MM-DD).`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "labels.xlsx", "output workbook path")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only labels on/after this date (YYYY-MM-DD)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		return fmt.Errorf("DB_URL is required for export")
	}

	var since *time.Time
	if exportSince != "" {
		t, err := time.Parse("2006-01-02", exportSince)
		if err != nil {
			return fmt.Errorf("parse --since: %w", err)
		}
		since = &t
	}

	logger := quietLogger()
	pool, err := repository.Open(cmd.Context(), repository.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		return err
	}
	defer repository.Close(pool, logger)

	svc := export.NewService(repository.NewFeedbackRepository(pool, logger), logger)
	out, err := svc.ExportLabelsXLSX(cmd.Context(), since)
	if err != nil {
		return err
	}
	if err := os.WriteFile(exportOut, out, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", exportOut, len(out))
	return nil
}
