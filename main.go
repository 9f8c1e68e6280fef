package main

import (
	"context"
	"os"
	"time"

	"ffmpeg-gui/internal/bootstrap"
	"ffmpeg-gui/internal/filesystem"
	"ffmpeg-gui/internal/journal"
	"ffmpeg-gui/internal/logging"
	"ffmpeg-gui/internal/metrics"
	"ffmpeg-gui/internal/startup"
)

func main() {
	os.Exit(run(bootstrap.ExecLauncher{}))
}

// run performs the container bootstrap and returns the exit code. With
// ExecLauncher it only returns on failure.
func run(launcher bootstrap.Launcher) int {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		logging.Error("Configuration error: %v", err)
		return bootstrap.ExitConfigError
	}

	metrics.InitializeMetrics()
	filesystem.SetObserver(metrics.NewFilesystemObserver())
	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
		"config": config.ConfigDir,
		"app":    config.AppDir,
	}))

	seq := bootstrap.New(bootstrap.Options{
		ConfigPath:   config.ConfigPath,
		TemplatePath: config.TemplatePath,
		LogDir:       config.LogDir,
		AppDir:       config.AppDir,
		EntryPoint:   config.EntryPoint,
		Interpreter:  config.Interpreter,
		Env:          os.Environ(),
		Launcher:     launcher,
	})

	// Ensure the Config Store exists
	startup.LogConfigStoreInit(config.ConfigPath)
	result, err := seq.EnsureConfigInitialized()
	if err != nil {
		logging.Error("Config store initialization failed: %v", err)
		finish(config, metrics.OutcomeFilesystemFault, startTime)
		return bootstrap.ExitCode(err)
	}
	startup.LogConfigStoreReady(result.State.String(), result.Seeded, result.Duration)
	if result.Seeded {
		metrics.ConfigSeededTotal.Inc()
	}

	// Record the boot
	boot := journal.Boot{
		StartedAt:           startTime,
		State:               result.State.String(),
		Seeded:              result.Seeded,
		ConfigPath:          result.ConfigPath,
		TemplateFingerprint: result.TemplateFingerprint,
		Outcome:             metrics.OutcomeLaunching,
	}
	bootID := recordBoot(config, &boot, startTime)

	// Hand off to the application
	inv, err := seq.PrepareLaunch()
	if err != nil {
		return launchFailed(config, bootID, startTime, err, false)
	}

	finish(config, metrics.OutcomeLaunching, startTime)
	startup.LogHandoff(inv.Args, inv.Dir, time.Since(startTime))

	if err := seq.Exec(inv); err != nil {
		return launchFailed(config, bootID, startTime, err, true)
	}

	// Only reached with a launcher that returns, such as in tests.
	return 0
}

// recordBoot writes the boot to the journal and returns its ID, or 0 when
// the journal is disabled or unavailable. Journal failures never stop the
// launch. The journal is closed again before hand-off.
func recordBoot(config *startup.Config, boot *journal.Boot, startTime time.Time) int64 {
	if !config.JournalEnabled {
		startup.LogJournal(false, "", nil)
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	j, err := journal.Open(ctx, config.JournalPath)
	if err != nil {
		startup.LogJournal(true, config.JournalPath, err)
		return 0
	}
	defer closeJournal(j)

	boot.Duration = time.Since(startTime)
	id, err := j.Record(ctx, *boot)
	startup.LogJournal(true, config.JournalPath, err)
	if err != nil {
		return 0
	}
	return id
}

// launchFailed records a launch fault everywhere it can and returns the
// exit code. exported is set when the run was already written out as
// launching; that sample is replaced so one start counts once.
func launchFailed(config *startup.Config, bootID int64, startTime time.Time, err error, exported bool) int {
	logging.Error("Application launch failed: %v", err)
	if exported {
		metrics.BootstrapRunsTotal.DeleteLabelValues(metrics.OutcomeLaunching)
		metrics.BootstrapRunsTotal.WithLabelValues(metrics.OutcomeLaunching)
	}
	finish(config, metrics.OutcomeLaunchFault, startTime)

	if bootID != 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		j, openErr := journal.Open(ctx, config.JournalPath)
		if openErr != nil {
			logging.Warn("Failed to reopen boot journal: %v", openErr)
		} else {
			if updateErr := j.UpdateOutcome(ctx, bootID, metrics.OutcomeLaunchFault, time.Since(startTime), err); updateErr != nil {
				logging.Warn("Failed to record launch fault: %v", updateErr)
			}
			closeJournal(j)
		}
	}

	return bootstrap.ExitCode(err)
}

// finish updates the bootstrap metrics for outcome and exports them when
// a textfile is configured.
func finish(config *startup.Config, outcome string, startTime time.Time) {
	metrics.BootstrapRunsTotal.WithLabelValues(outcome).Inc()
	metrics.BootstrapDuration.Set(time.Since(startTime).Seconds())
	metrics.BootstrapLastRunTimestamp.Set(float64(startTime.Unix()))

	if config.MetricsTextfile == "" {
		return
	}
	if err := metrics.WriteTextfile(config.MetricsTextfile); err != nil {
		logging.Warn("Failed to write metrics textfile: %v", err)
		return
	}
	logging.Debug("Metrics written to %s", config.MetricsTextfile)
}

func closeJournal(j *journal.Journal) {
	if err := j.Close(); err != nil {
		logging.Warn("Failed to close boot journal: %v", err)
	}
}
