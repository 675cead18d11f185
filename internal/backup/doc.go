// Package backup protects the timeto database with a daily automatic backup
// into a folder the user picks once.
//
// # Layout
//
// Backups are JSON snapshots stored in a dedicated folder inside the chosen
// location:
//
//	<location>/
//	└── timetome_autobackups/
//	    ├── 20261013T081502.117.json
//	    └── 20261014T093000.000.json
//
// File names are UTC timestamps in a fixed-width layout, so sorting names
// sorts backups by age. See [EncodeName] and [DecodeName].
//
// # Running
//
// [Scheduler.DailyBackupIfNeeded] is the entry point. It looks up the day of
// the newest backup and, if it is before today, asks the [Exporter] for a
// new one and then lets [Retention] delete everything past [MaxRetained]:
//
//	ret := backup.NewRetention(provider, locations)
//	exp := backup.NewExporter(provider, locations, prompter, db)
//	res := backup.NewScheduler(exp, ret).DailyBackupIfNeeded(ctx)
//
// The first run prompts for a location through the [Prompter]. The choice is
// kept in a [LocationStore] and reused by every later run.
//
// Concurrent calls share one run. A [Watcher] drives the scheduler from a
// cron schedule in long-lived processes.
//
// # Errors
//
// DailyBackupIfNeeded never returns an error. Failures are classified with
// [Classify], passed to the [Reporter] and returned in [Result.Failures].
// Lower layers mark their errors with the sentinels [ErrWrite], [ErrList],
// [ErrDelete], [ErrDecode], [ErrSnapshot], [ErrLocation],
// [ErrUserCancelled] and [ErrConfigMissing].
package backup
