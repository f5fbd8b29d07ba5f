package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/modelcap/internal/config"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the registry whenever the config or catalog files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watcher, err := config.NewWatcher(a.configPath, a.schemaPath, func(cfg *config.Config, err error) {
				if err != nil {
					slog.Error("Failed to reload config", "error", err)
					return
				}

				if err := a.load(context.Background(), cfg); err != nil {
					slog.Error("Failed to rebuild registry, keeping the previous one", "error", err)
					return
				}
			})
			if err != nil {
				return fmt.Errorf("failed to create config watcher: %w", err)
			}
			defer watcher.Close()

			if err := a.load(ctx, watcher.Snapshot()); err != nil {
				return err
			}

			slog.Info("Watching for changes", "config", a.configPath)

			<-ctx.Done()
			slog.Info("Stopped watching", "reloads", watcher.ReloadCount())
			return nil
		},
	}
}
