package backup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/timeto/internal/backup"
	"github.com/thoreinstein/timeto/internal/errors"
	"github.com/thoreinstein/timeto/internal/logging"
)

var (
	watchSchedule    string
	watchMetricsAddr string
	watchNoPrompt    bool
)

func init() {
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "",
		"Cron expression overriding backup.schedule (e.g. \"@every 30m\", \"0 9 * * *\")")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "",
		"Serve Prometheus metrics on this address (e.g. :9310)")
	watchCmd.Flags().BoolVar(&watchNoPrompt, "no-prompt", false,
		"Skip instead of asking for a location when none is set")
	Cmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep checking for a missing daily backup",
	Long: `Run the daily backup check now and then on a schedule until interrupted.
Only the first check of each day writes a file.`,
	Example: `  # Check every hour (the default)
  timeto backup watch

  # Check every 15 minutes and expose metrics
  timeto backup watch --schedule "@every 15m" --metrics-addr :9310

  See Also:
    timeto backup run - Run a single check`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWatchWithIO(cmd.Context(), os.Stdin, cmd.OutOrStdout())
	},
}

func runWatchWithIO(ctx context.Context, in io.Reader, w io.Writer) error {
	e := newEnv(ctx)
	defer e.Close()

	schedule := e.cfg.Backup.Schedule
	if watchSchedule != "" {
		schedule = watchSchedule
	}

	watcher := backup.NewWatcher(
		e.scheduler(newPrompter(in, w, !watchNoPrompt)),
		backup.WithSchedule(schedule),
		backup.WithResultHandler(func(res backup.Result) {
			if res.Outcome == backup.OutcomeBackedUp {
				fmt.Fprintf(w, "%s %s Backup written: %s\n",
					gray(time.Now().Format(time.TimeOnly)), green("✓"), res.Backup.Name)
			}
		}),
		backup.WithWatchOptions(e.opts...),
	)
	if err := watcher.Start(ctx); err != nil {
		return errors.NewUserError(err, "Check backup.schedule in config.yaml")
	}
	defer watcher.Stop()

	logger := logging.FromContext(ctx)
	if watchMetricsAddr != "" {
		srv := &http.Server{
			Addr:              watchMetricsAddr,
			Handler:           metricsMux(e),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info("serving metrics", "addr", watchMetricsAddr)
	}

	if next := watcher.NextRun(); next != nil {
		fmt.Fprintf(w, "Watching for missing backups (%s), next check %s\n",
			schedule, next.Local().Format(time.DateTime))
	}

	<-ctx.Done()
	fmt.Fprintln(w, "Stopping")
	return nil
}

func metricsMux(e *env) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))
	return mux
}
