package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/home-inventory/internal/queue"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Append published change events to the audit log",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c := &queue.Consumer{URL: cfg.Events.URL, Queue: cfg.Events.Queue, LogPath: cfg.Events.LogPath}
		logger.Info("audit consumer started", "queue", c.Queue, "log_path", c.LogPath)
		if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Info("audit consumer stopped")
		return nil
	},
}
