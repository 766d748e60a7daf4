package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/vaultpipe/internal/app"
	"github.com/runoshun/vaultpipe/internal/usecase"
)

// newRollbackCommand creates the rollback command.
func newRollbackCommand(vaultDir *string, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <filename>",
		Short: "Remove every artifact derived from an original inbox file",
		Long: `Remove every artifact the pipeline derived from the given original
inbox filename: the Needs_Action working copy and metadata note, all
plans, any Pending_Approval copies, any Done copies, and the matching
audit-log lines.

Rollback runs on filesystem state alone, so it works whether or not the
watcher is running. Rolling back a file with no remaining artifacts
reports zero removals and succeeds.`,
		Args: cobra.ExactArgs(1),
		RunE: withContainer(vaultDir, dryRun, func(cmd *cobra.Command, c *app.Container, args []string) error {
			out, err := c.RollbackTaskUseCase().Execute(cmd.Context(), usecase.RollbackTaskInput{
				OriginalName: args[0],
			})
			if err != nil {
				return err
			}

			r := out.Report
			_, _ = fmt.Fprintf(cmd.OutOrStdout(),
				"Rolled back %s: %d artifact(s) removed, %d catalog entr(ies) dropped\n",
				args[0], len(r.Removed), r.CatalogEntriesRemoved)
			for _, path := range r.Removed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  removed %s\n", path)
			}
			return nil
		}),
	}
}
