package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/marketlab/optioncore/internal/analyze"
	"github.com/marketlab/optioncore/internal/config"
	"github.com/marketlab/optioncore/models"
)

// scoreCmd scores one analysis request read from a local JSON file.
// The engine itself does no I/O; this command is the only place bytes
// enter or leave the process.
func scoreCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an analysis request from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			setupLogging(cfg.LogLevel)

			weights := config.DefaultWeights()
			if cfg.WeightsFile != "" {
				weights, err = config.LoadWeights(cfg.WeightsFile)
				if err != nil {
					return fmt.Errorf("loading weight profiles: %w", err)
				}
				log.Info().Str("file", cfg.WeightsFile).Msg("Loaded strategy weight profiles")
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("reading request: %w", err)
			}
			var req models.AnalysisRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("parsing request: %w", err)
			}

			log.Info().Str("symbol", req.Symbol).Int("bars", len(req.Candles)).Msg("Scoring")
			result := analyze.New(cfg, weights).Analyze(&req)

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "request.json", "path to the analysis request JSON")
	return cmd
}
