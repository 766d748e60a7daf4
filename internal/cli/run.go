package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/vaultpipe/internal/app"
)

// newRunCommand creates the run command.
func newRunCommand(vaultDir *string, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process every pending task once",
		Long: `Run one pipeline pass: classify each Needs_Action task, persist a
plan, then either archive the task into Done with an audit entry or copy
it into Pending_Approval for a human decision. The dashboard is
refreshed afterwards.

Individual task failures are logged and counted; they do not fail the
command. Only an unreadable Needs_Action directory does.`,
		RunE: withContainer(vaultDir, dryRun, func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.RunPipelineUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			r := out.Report
			if c.Config.DryRun {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Dry run: nothing was written")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(),
				"Processed %d task(s): %d plan(s), %d completed, %d routed for approval, %d error(s)\n",
				r.Processed, r.PlansCreated, r.Completed, r.RoutedForApproval, r.Errors)
			return nil
		}),
	}
}
