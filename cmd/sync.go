package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	syncDelete bool
	syncDryRun bool
	syncYes    bool
)

// syncCmd reconciles the full instance state against the roster.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile instance accounts against the roster CSV",
	Long: `Sync makes the instance match the roster: missing accounts are
created, differing accounts are updated field by field, and with --delete
accounts absent from the roster are removed.

The admin account and accounts listed in sync.protected (or members of
sync.protected_groups) are never deleted.

Examples:
  # Report differences only
  nc-usersync sync --dry-run

  # Create and update (with interactive confirmation)
  nc-usersync sync

  # Full reconcile including deletes, non-interactive
  nc-usersync sync --delete --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeRun(context.Background(), runOptions{
			mode:          "sync",
			deleteMissing: syncDelete,
			dryRun:        syncDryRun,
			yes:           syncYes,
		})
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncDelete, "delete", false, "Delete accounts absent from the roster")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Plan and report only, no changes")
	syncCmd.Flags().BoolVar(&syncYes, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}
