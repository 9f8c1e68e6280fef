// Package startup handles bootstrap configuration loading and the lifecycle
// status lines printed by the launcher and by guictl serve.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig]
// (banner and logging) or [FromEnv] (silent):
//
//   - CONFIG_DIR: Directory of config.json (default: /config/ffmpeg-gui)
//   - CONFIG_TEMPLATE: Template shipped in the image (default: /app/config.json.template)
//   - APP_DIR: Install directory and working directory of the GUI (default: /app)
//   - APP_ENTRY: Entry point, relative to APP_DIR unless absolute (default: ffmpeg_gui.py)
//   - APP_INTERPRETER: Optional interpreter resolved on PATH (default: none)
//   - JOURNAL_ENABLED: Record boots in CONFIG_DIR/bootstrap.db (default: true)
//   - METRICS_TEXTFILE: Write a Prometheus textfile before hand-off (default: none)
//   - LOG_HEALTH_CHECKS: Log probe requests in guictl serve (default: false)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - DEBUG: Shorthand for LOG_LEVEL=debug
//
// The display variables in [PassthroughVars] (LANG, TZ, DISPLAY_WIDTH...)
// belong to the supervisor and are only logged.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Example Usage
//
//	config, err := startup.LoadConfig()
//	if err != nil {
//	    logging.Error("Configuration error: %v", err)
//	    return bootstrap.ExitConfigError
//	}
//
//	startup.LogConfigStoreInit(config.ConfigPath)
//	// ... EnsureConfigInitialized ...
//	startup.LogConfigStoreReady(result.State.String(), result.Seeded, result.Duration)
//	startup.LogHandoff(inv.Args, inv.Dir, time.Since(start))
package startup
