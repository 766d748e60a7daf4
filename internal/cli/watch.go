package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/runoshun/vaultpipe/internal/app"
)

// newWatchCommand creates the watch command.
func newWatchCommand(vaultDir *string, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the inbox and process files as they arrive",
		Long: `Watch the vault's Inbox directory. New files are ingested once their
size settles and pushed through a full pipeline pass; deleting an
original inbox file rolls back everything derived from it.

Stops cleanly on SIGINT or SIGTERM, finishing the in-flight event first.`,
		RunE: withContainer(vaultDir, dryRun, func(cmd *cobra.Command, c *app.Container, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", c.Dirs.Inbox)
			err := c.WatchInboxUseCase().Execute(ctx)
			if errors.Is(err, context.Canceled) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Stopped")
				return nil
			}
			return err
		}),
	}
}
