package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/timeto/cmd/timeto/commands/flags"
	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/config"
	"github.com/thoreinstein/timeto/internal/doctor"
	"github.com/thoreinstein/timeto/internal/errors"
	"github.com/thoreinstein/timeto/internal/logging"
	"github.com/thoreinstein/timeto/internal/storage"
)

var (
	doctorJSON    bool
	doctorSilent   bool
	doctorAll bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorSilent, "silent", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false,
		"show passed checks too")
	doctorCmd.MarkFlagsMutuallyExclusive("json", "silent", "all")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and backup issues",
	Long: `Run diagnostic checks on the timeto configuration, database and
automatic backups.

Checks that the backup location is set and writable, that today's backup
exists and that no more than 10 backups are stored.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --all       Show all checks including passed ones
  --silent    No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctorWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

func runDoctorWithWriter(ctx context.Context, w io.Writer) error {
	cfg := flags.GetConfig()
	store := backup.NewFileLocationStore(cfg.StateFile)
	retention := backup.NewRetention(storage.NewFS(), store,
		backup.WithLogger(logging.FromContext(ctx)),
		backup.WithIOTimeout(cfg.Backup.IOTimeout),
	)

	runner := doctor.NewRunner()
	for _, c := range doctor.DefaultChecks(cfg, config.ConfigFileUsed(), store, retention, nil) {
		runner.AddCheck(c)
	}
	report := runner.Run(ctx)

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	if doctorSilent {
		return nil
	}

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		return nil
	}

	return outputDoctorText(w, report)
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport) error {
	// In normal mode, show only errors and warnings
	showAll := doctorAll

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")
