package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/vaultpipe/internal/app"
)

// newSnapshotCommand creates the snapshot command.
func newSnapshotCommand(vaultDir *string, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Commit the vault tree into its local git repository",
		Long: `Stage and commit the whole vault into a git repository at the vault
root, creating the repository on first use. A clean tree is a no-op.`,
		RunE: withContainer(vaultDir, dryRun, func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.SnapshotVaultUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out.Message)
			return nil
		}),
	}
}
