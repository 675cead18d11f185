package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/errors"
)

var locationSet string

func init() {
	locationCmd.Flags().StringVar(&locationSet, "set", "",
		"Directory that will hold the timetome_autobackups folder")
	Cmd.AddCommand(locationCmd)
}

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Show or set the backup location",
	Long: `Show the directory backups are written to, or set it with --set.

The location is stored in $XDG_STATE_HOME/timeto/state.yaml and reused by
every later backup. Existing backups are not moved.`,
	Example: `  # Show the current location
  timeto backup location

  # Use an external drive
  timeto backup location --set /media/usb

  See Also:
    timeto backup run - Daily backup if needed`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLocationWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runLocationWithWriter(ctx context.Context, w io.Writer) error {
	e := newEnv(ctx)
	defer e.Close()

	if locationSet != "" {
		return setLocation(ctx, w, e, locationSet)
	}

	loc, ok, err := e.locations.Get(ctx)
	if err != nil {
		return errors.NewConfigError(err)
	}
	if !ok {
		fmt.Fprintln(w, "No backup location set")
		return nil
	}
	fmt.Fprintf(w, "%s %s\n", cyan("Location:"), loc)
	fmt.Fprintf(w, "%s %s\n", cyan("Folder:"), backup.FolderPath(loc))
	fmt.Fprintf(w, "%s %s\n", cyan("State file:"), e.locations.Path())
	return nil
}

func setLocation(ctx context.Context, w io.Writer, e *env, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return errors.NewUserError(errors.Wrapf(err, "resolving %s", dir), "")
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return errors.NewUserError(errors.Newf("%s is not an existing directory", abs),
			"Create the directory first or pick another one")
	}

	if err := e.locations.Set(ctx, backup.Location(abs)); err != nil {
		return errors.NewSystemError(err, "Check permissions on "+e.locations.Path())
	}
	fmt.Fprintf(w, "%s Backups will be written to %s\n", green("✓"), backup.FolderPath(backup.Location(abs)))
	return nil
}
