// Package cli provides the command-line interface for vaultpipe.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/vaultpipe/internal/app"
)

// Command group IDs.
const (
	groupSetup    = "setup"
	groupPipeline = "pipeline"
	groupInspect  = "inspect"
)

// NewRootCommand creates the root command for vaultpipe.
func NewRootCommand(version string) *cobra.Command {
	var vaultDir string
	var dryRun bool

	root := &cobra.Command{
		Use:   "vaultpipe",
		Short: "Filesystem-state task pipeline for a watched vault",
		Long: `vaultpipe routes files dropped into a vault's Inbox through a
classify, plan, execute, archive pipeline. A task's whole lifecycle is
the location of its files across the vault directories; deleting the
original Inbox file rolls back every artifact derived from it.

The vault layout (Inbox/, Needs_Action/, Plans/, Pending_Approval/,
Approved/, Rejected/, Done/, Logs/) is created by 'vaultpipe init'.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&vaultDir, "vault", ".", "Vault root directory")
	root.PersistentFlags().BoolVar(&dryRun, "dry-run", false,
		"Simulate every write and move without touching the vault")

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupPipeline, Title: "Pipeline Commands:"},
		&cobra.Group{ID: groupInspect, Title: "Inspection Commands:"},
	)

	initCmd := newInitCommand(&vaultDir, &dryRun)
	initCmd.GroupID = groupSetup

	runCmd := newRunCommand(&vaultDir, &dryRun)
	runCmd.GroupID = groupPipeline

	watchCmd := newWatchCommand(&vaultDir, &dryRun)
	watchCmd.GroupID = groupPipeline

	rollbackCmd := newRollbackCommand(&vaultDir, &dryRun)
	rollbackCmd.GroupID = groupPipeline

	snapshotCmd := newSnapshotCommand(&vaultDir, &dryRun)
	snapshotCmd.GroupID = groupPipeline

	scanCmd := newScanCommand(&vaultDir, &dryRun)
	scanCmd.GroupID = groupInspect

	dashboardCmd := newDashboardCommand(&vaultDir, &dryRun)
	dashboardCmd.GroupID = groupInspect

	root.AddCommand(initCmd, runCmd, watchCmd, rollbackCmd, snapshotCmd, scanCmd, dashboardCmd)
	return root
}

// withContainer wraps a RunE with container construction and teardown.
// The container is built after flag parsing so --vault and --dry-run are
// honored.
func withContainer(vaultDir *string, dryRun *bool, fn func(cmd *cobra.Command, c *app.Container, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := app.New(*vaultDir, app.Options{DryRun: *dryRun})
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()
		return fn(cmd, c, args)
	}
}
