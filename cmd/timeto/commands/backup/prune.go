package backup

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/timeto/internal/errors"
)

func init() {
	Cmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove backups beyond the 10 most recent",
	Long: `Apply the retention window: keep the 10 most recent backups and delete the
rest. A backup that cannot be deleted is reported and the others are still
removed.

Retention also runs after every backup, so this is only needed after
copying backups into the folder by hand.`,
	Example: `  timeto backup prune

  See Also:
    timeto backup list - List backups`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPruneWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runPruneWithWriter(ctx context.Context, w io.Writer) error {
	e := newEnv(ctx)
	defer e.Close()

	report, err := e.retention().Cleanup(ctx)
	if err != nil {
		return errors.NewSystemError(err, "Check that the backup location is reachable")
	}

	if len(report.Deleted) == 0 && len(report.Failed) == 0 {
		fmt.Fprintln(w, "No backups to prune")
		return nil
	}

	for _, r := range report.Deleted {
		fmt.Fprintf(w, "%s removed %s\n", green("✓"), r.Name)
	}
	for _, f := range report.Failed {
		fmt.Fprintf(w, "%s could not remove %s: %v\n", yellow("!"), f.Record.Name, f.Err)
	}
	fmt.Fprintf(w, "\nTotal: kept %d, removed %d backup(s)\n", len(report.Kept), len(report.Deleted))

	if len(report.Failed) > 0 {
		return errors.NewSystemError(
			errors.Newf("%d backup(s) could not be removed", len(report.Failed)),
			"Check file permissions in the backup folder")
	}
	return nil
}
