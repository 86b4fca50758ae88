// Package cmd implements the CLI commands for planpipe using Cobra.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"planpipe/config"
)

// Persistent flag variables.
var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "planpipe",
	Short: "planpipe — fetch a study-plan PDF and convert it to text/XML",
	Long: `planpipe downloads the study-plan PDF from a course-catalog page,
converts it into text, XML and structured XML, and serves the results
over a small HTTP API. A separate bot command runs the echo bot.

Usage:
  planpipe serve            fetch, convert, then serve the artifacts
  planpipe fetch            download the PDF and update the latest pointer
  planpipe convert <pdf>    convert an already-downloaded PDF
  planpipe bot              run the Telegram echo bot`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file path (optional YAML)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogger installs the global zap logger used by every component.
func initLogger() error {
	var (
		logger *zap.Logger
		err    error
	)
	if flagVerbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// loadConfig reads the config and validates the common fields.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}
