package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/josephvaleri/mlmp/internal/common"
	"github.com/josephvaleri/mlmp/internal/scoring"
)

var weightsURL string

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Fetch and print the trainer's current feature weights",
	RunE:  runWeights,
}

func init() {
	weightsCmd.Flags().StringVar(&weightsURL, "url", "", "trainer endpoint (defaults to TRAINER_URL)")
	rootCmd.AddCommand(weightsCmd)
}

func runWeights(cmd *cobra.Command, args []string) error {
	cfg := common.LoadConfig()
	url := weightsURL
	if url == "" {
		url = cfg.Trainer.URL
	}
	if url == "" {
		return fmt.Errorf("no trainer endpoint: set TRAINER_URL or pass --url")
	}

	client, err := scoring.NewTrainerClient(url, cfg.Trainer.Timeout, quietLogger())
	if err != nil {
		return err
	}
	weights, err := client.FetchWeights(cmd.Context())
	if err != nil {
		return err
	}
	if len(weights) == 0 {
		fmt.Println("trainer returned no weights; scoring runs heuristically")
		return nil
	}

	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-24s %+.4f\n", name, weights[name])
	}
	return nil
}
