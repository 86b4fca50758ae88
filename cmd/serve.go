// Package cmd — serve command.
// Runs the fetch → convert pipeline once, then starts the HTTP API.
// A pipeline failure is recorded in the injected result and reported by
// /status; the server starts regardless.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"planpipe/core/pipeline"
	"planpipe/core/store"
	"planpipe/server"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Fetch and convert the study plan, then serve the artifacts",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.ListenAddr
	if flagListen != "" {
		addr = flagListen
	}

	st, err := store.New(cfg.DataDir)
	if err != nil {
		return err
	}

	result := pipeline.New(st).Run(context.Background(), cfg.PageURL)
	if result.Ready() {
		zap.S().Infow("startup pipeline complete", "pdf", result.PDFPath, "pages", result.PageCount)
	} else {
		zap.S().Warnw("startup pipeline failed, serving status only", "error", result.Err)
	}

	return server.New(result, st).Run(addr)
}
