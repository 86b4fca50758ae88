// Package cmd — fetch command.
// Downloads the study-plan PDF and updates the latest pointer, without
// running the converter.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"planpipe/core/fetch"
	"planpipe/core/store"
)

var flagURL string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the current study-plan PDF",
	Args:  cobra.NoArgs,
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&flagURL, "url", "", "Catalog page URL (overrides config)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pageURL := cfg.PageURL
	if flagURL != "" {
		pageURL = flagURL
	}

	st, err := store.New(cfg.DataDir)
	if err != nil {
		return err
	}

	result, err := fetch.New(st).Fetch(context.Background(), pageURL)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "✓ Downloaded: %s\n", result.PDFPath)
	return nil
}
