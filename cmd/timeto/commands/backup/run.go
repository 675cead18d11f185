package backup

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/errors"
)

var runNoPrompt bool

func init() {
	runCmd.Flags().BoolVar(&runNoPrompt, "no-prompt", false,
		"Skip instead of asking for a location when none is set")
	Cmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Back up if today's backup is missing",
	Long: `Check the newest backup and, if none exists for today, write a new one
and remove backups beyond the 10 most recent.

Running it again on the same day does nothing. This is the command to call
from a login hook or a scheduler.`,
	Example: `  # Daily check, asking for a location on first use
  timeto backup run

  # From cron, never prompting
  timeto backup run --no-prompt

  See Also:
    timeto backup watch - Keep checking on a schedule`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRunWithIO(cmd.Context(), os.Stdin, cmd.OutOrStdout())
	},
}

func runRunWithIO(ctx context.Context, in io.Reader, w io.Writer) error {
	e := newEnv(ctx)
	defer e.Close()

	res := e.scheduler(newPrompter(in, w, !runNoPrompt)).DailyBackupIfNeeded(ctx)
	return printResult(w, res)
}

// printResult renders a scheduler result and maps it to an exit status.
func printResult(w io.Writer, res backup.Result) error {
	switch res.Outcome {
	case backup.OutcomeUpToDate:
		fmt.Fprintf(w, "Backup for %s already exists\n", res.LastBackupDay)
		return nil

	case backup.OutcomeBackedUp:
		fmt.Fprintf(w, "%s Backup written: %s\n", green("✓"), bold(res.Backup.Name))
		fmt.Fprintf(w, "  Folder: %s\n", res.Backup.FolderPath)
		if res.Cleanup != nil && len(res.Cleanup.Deleted) > 0 {
			fmt.Fprintf(w, "  Removed %d old backup(s)\n", len(res.Cleanup.Deleted))
		}
		for _, f := range res.Failures {
			fmt.Fprintf(w, "  %s %v\n", yellow("!"), f.Err)
		}
		return nil

	case backup.OutcomeCancelled:
		fmt.Fprintln(w, "Backup skipped: no location chosen")
		return nil

	case backup.OutcomeNotConfigured:
		return errors.NewUserError(backup.ErrConfigMissing,
			"Run 'timeto backup location --set <dir>' once, or run without --no-prompt")

	default:
		if len(res.Failures) == 0 {
			return errors.NewSystemError(errors.New("backup failed"), "")
		}
		return errors.NewSystemError(res.Failures[0].Err,
			"Check that the backup location is reachable and writable")
	}
}
