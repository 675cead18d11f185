// Package backup provides CLI commands for the automatic backup.
package backup

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Output styles. fatih/color disables them when stdout is not a terminal.
var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Cmd is the root backup command.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage automatic backups",
	Long: `Manage the automatic daily backup of the timeto database.

The first backup asks where backups should live. timeto creates a
timetome_autobackups folder there and writes one JSON snapshot per day,
keeping the 10 most recent.`,
	Example: `  # Back up if today's backup is missing
  timeto backup run

  # Force a new backup now
  timeto backup create

  # Show stored backups
  timeto backup list

  # Choose the location without prompting
  timeto backup location --set /media/usb

  See Also:
    timeto backup run      - Daily backup if needed
    timeto backup create   - Back up now
    timeto backup list     - List backups
    timeto backup prune    - Apply retention
    timeto backup watch    - Keep checking on a schedule
    timeto backup location - Show or set the location`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
