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

var createNoPrompt bool

func init() {
	createCmd.Flags().BoolVar(&createNoPrompt, "no-prompt", false,
		"Fail instead of asking for a location when none is set")
	Cmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a backup now",
	Long: `Write a new backup immediately, even if one exists for today, then
remove backups beyond the 10 most recent.`,
	Example: `  # Back up before a risky edit
  timeto backup create

  See Also:
    timeto backup run  - Back up only if needed
    timeto backup list - List backups`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCreateWithIO(cmd.Context(), os.Stdin, cmd.OutOrStdout())
	},
}

func runCreateWithIO(ctx context.Context, in io.Reader, w io.Writer) error {
	e := newEnv(ctx)
	defer e.Close()

	rec, err := e.exporter(newPrompter(in, w, !createNoPrompt)).NewBackup(ctx)
	if err != nil {
		switch backup.Classify(err) {
		case backup.KindUserCancelled:
			fmt.Fprintln(w, "Backup skipped: no location chosen")
			return nil
		case backup.KindConfigMissing:
			return errors.NewUserError(err, "Run 'timeto backup location --set <dir>' first")
		default:
			return errors.NewSystemError(err, "Check that the backup location is reachable and writable")
		}
	}

	fmt.Fprintf(w, "%s Backup written: %s\n", green("✓"), bold(rec.Name))
	fmt.Fprintf(w, "  Folder: %s\n", rec.FolderPath)

	report, err := e.retention().Cleanup(ctx)
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "applying retention"), "")
	}
	printCleanup(w, report)
	return nil
}

func printCleanup(w io.Writer, report backup.CleanupReport) {
	if len(report.Deleted) > 0 {
		fmt.Fprintf(w, "  Removed %d old backup(s)\n", len(report.Deleted))
	}
	for _, f := range report.Failed {
		fmt.Fprintf(w, "  %s could not remove %s: %v\n", yellow("!"), f.Record.Name, f.Err)
	}
}
