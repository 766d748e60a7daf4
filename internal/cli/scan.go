package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/vaultpipe/internal/app"
)

// newScanCommand creates the scan command.
func newScanCommand(vaultDir *string, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List pending tasks without processing them",
		RunE: withContainer(vaultDir, dryRun, func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.ScanTasksUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No pending tasks")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()

			_, _ = fmt.Fprintln(tw, "TASK\tORIGINAL\tSIZE\tAGE")
			now := c.Clock.Now()
			for _, task := range out.Tasks {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
					task.Name, task.Original(), task.Size, formatAge(now.Sub(task.Modified)))
			}
			return nil
		}),
	}
}

func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
