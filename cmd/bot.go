// Package cmd — bot command.
// Runs the Telegram echo bot as an independent long-polling process.
package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"planpipe/bot"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram echo bot",
	Args:  cobra.NoArgs,
	RunE:  runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if errs := cfg.ValidateBot(); len(errs) > 0 {
		return errors.Join(errs...)
	}

	b, err := bot.New(cfg.BotToken)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
