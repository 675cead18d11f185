package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/errors"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored backups",
	Long: `List the backups in the configured location, most recent first.
Files in the backup folder that are not backups are not shown.`,
	Example: `  # List backups
  timeto backup list

  # Output as JSON
  timeto backup list --json

  See Also:
    timeto backup create - Create a new backup
    timeto backup prune  - Remove old backups`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runListWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

// listOutput represents the JSON output for backup list.
type listOutput struct {
	Location string       `json:"location"`
	Folder   string       `json:"folder,omitempty"`
	Backups  []backupInfo `json:"backups"`
}

// backupInfo represents a single backup in JSON output.
type backupInfo struct {
	Name      string    `json:"name"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func runListWithWriter(ctx context.Context, w io.Writer) error {
	e := newEnv(ctx)
	defer e.Close()

	loc, ok, err := e.locations.Get(ctx)
	if err != nil {
		return errors.NewConfigError(err)
	}

	records, err := e.retention().ListDescending(ctx)
	if err != nil {
		return errors.NewSystemError(err, "Check that the backup location is reachable")
	}

	if listJSON {
		return outputListJSON(w, loc, ok, records)
	}
	return outputListTabular(w, loc, ok, records)
}

func outputListJSON(w io.Writer, loc backup.Location, ok bool, records []backup.Record) error {
	out := listOutput{
		Location: string(loc),
		Backups:  make([]backupInfo, 0, len(records)),
	}
	if ok {
		out.Folder = backup.FolderPath(loc)
	}
	for _, r := range records {
		created, _ := r.Time()
		out.Backups = append(out.Backups, backupInfo{Name: r.Name, ID: r.ID, CreatedAt: created})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func outputListTabular(w io.Writer, loc backup.Location, ok bool, records []backup.Record) error {
	if !ok {
		fmt.Fprintln(w, "No backup location set")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "The first 'timeto backup run' asks for one, or set it with:")
		fmt.Fprintln(w, "  timeto backup location --set <dir>")
		return nil
	}

	fmt.Fprintf(w, "%s %s\n", cyan("Folder:"), backup.FolderPath(loc))

	if len(records) == 0 {
		fmt.Fprintf(w, "  %s\n", gray("(no backups yet)"))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\n", bold("NAME"), bold("CREATED"))
	for _, r := range records {
		created, _ := r.Time()
		fmt.Fprintf(tw, "  %s\t%s\n", green(r.Name), created.Local().Format("2006-01-02 15:04:05"))
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "writing table")
	}

	fmt.Fprintf(w, "\n%d of %d backups kept\n", len(records), backup.MaxRetained)
	return nil
}
