package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/josephvaleri/mlmp/constants"
	"github.com/josephvaleri/mlmp/internal/common"
	"github.com/josephvaleri/mlmp/internal/repository"
)

var labelCmd = &cobra.Command{
	Use:   "label <candidate-id> <verdict> [edited text]",
	Short: "Record a verdict on a stored candidate",
	Long: `Record feedback on an extracted candidate.

Verdicts accept loose forms: approve/accept/yes, deny/reject/no, edit.
Editing requires the corrected dish name as the remaining arguments:

  mlmp label 6f1c... approve
  mlmp label 6f1c... no
  mlmp label 6f1c... edit Lobster Newburg`,
	Args: cobra.MinimumNArgs(2),
	RunE: runLabel,
}

func init() {
	rootCmd.AddCommand(labelCmd)
}

func runLabel(cmd *cobra.Command, args []string) error {
	candidateID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parse candidate id: %w", err)
	}
	status, ok := constants.CanonicalizeLabel(args[1])
	if !ok {
		return fmt.Errorf("unknown verdict %q (expected one of %s)",
			args[1], strings.Join(constants.LabelStatusStrings(), ", "))
	}

	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		return fmt.Errorf("DB_URL is required for labeling")
	}
	logger := quietLogger()
	pool, err := repository.Open(cmd.Context(), repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		return err
	}
	defer repository.Close(pool, logger)

	feedback := repository.NewFeedbackRepository(pool, logger)
	switch status {
	case constants.LabelApproved:
		_, err = feedback.Approve(cmd.Context(), candidateID)
	case constants.LabelDenied:
		_, err = feedback.Deny(cmd.Context(), candidateID)
	case constants.LabelEdited:
		if len(args) < 3 {
			return fmt.Errorf("edit verdict needs the corrected text")
		}
		_, err = feedback.Edit(cmd.Context(), candidateID, strings.Join(args[2:], " "))
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s recorded for %s\n", status, candidateID)
	return nil
}
