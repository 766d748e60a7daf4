package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/vaultpipe/internal/app"
)

// newDashboardCommand creates the dashboard command.
func newDashboardCommand(vaultDir *string, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Regenerate Dashboard.md from current vault state",
		RunE: withContainer(vaultDir, dryRun, func(cmd *cobra.Command, c *app.Container, _ []string) error {
			if err := c.RefreshDashboardUseCase().Execute(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dashboard written to %s\n", c.Dirs.DashboardPath())
			return nil
		}),
	}
}
