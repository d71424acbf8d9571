package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Execute builds and runs the command tree.
func Execute() error {
	root := &cobra.Command{
		Use:   "scorer",
		Short: "Options-strategy scoring engine",
		Long: "scorer turns price history, implied volatility and option quotes into\n" +
			"calibrated trade-quality scores for sell_put, sell_call, buy_call and buy_put.",
	}
	root.AddCommand(scoreCmd())
	return root.Execute()
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
