package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/vaultpipe/internal/app"
)

// newInitCommand creates the init command.
func newInitCommand(vaultDir *string, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the vault layout and default configuration",
		Long: `Create the vault directory layout, write the default vault.toml,
and render the first dashboard.

Running init on an existing vault is safe: directories are reused and an
existing vault.toml is never overwritten.`,
		RunE: withContainer(vaultDir, dryRun, func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.InitVaultUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized vault at %s\n", out.Root)
			if !out.ConfigWritten {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Kept existing vault.toml")
			}
			return nil
		}),
	}
}
