package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	importDryRun bool
	importYes    bool
)

// importCmd creates roster accounts that do not exist yet and never touches
// existing ones.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Create missing accounts from the roster CSV",
	Long: `Import reads the roster CSV and creates every account that does not
exist on the instance yet. Existing accounts are left untouched.

Generated passwords end up on the credential sheets in the output
directory, never in logs or the run history.

Examples:
  # Preview what would be created
  nc-usersync import --dry-run

  # Create accounts (with interactive confirmation)
  nc-usersync import

  # Non-interactive
  nc-usersync import --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeRun(context.Background(), runOptions{
			mode:       "import",
			createOnly: true,
			dryRun:     importDryRun,
			yes:        importYes,
		})
	},
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Plan and report only, no changes")
	importCmd.Flags().BoolVar(&importYes, "yes", false, "Auto-confirm (non-interactive)")

	RootCmd.AddCommand(importCmd)
}
