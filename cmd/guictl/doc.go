// Command guictl inspects and manages the ffmpeg-gui configuration store
// from inside the container, e.g. via docker exec.
//
// Usage:
//
//	guictl <command> [flags]
//
// Commands:
//
//	status    Show whether config.json exists, whether it still matches the
//	          template, its validation summary and the most recent boots.
//
//	validate  Check config.json (or --file) against what the GUI reads.
//	          Exits 1 when an error-severity issue is found.
//
//	reset     Restore config.json from the template, keeping a timestamped
//	          backup unless --no-backup is given. Asks for confirmation on a
//	          terminal and requires --force otherwise.
//
//	serve     Serve /healthz, /livez, /readyz, /api/config, /api/boots,
//	          /api/version and /metrics on --addr (default :9100).
//
//	version   Print build information.
//
// Every command accepts -o text|json|yaml. guictl reads the same
// environment as the launcher (CONFIG_DIR, CONFIG_TEMPLATE, APP_DIR,
// JOURNAL_ENABLED, LOG_LEVEL...) and never runs at container start.
package main
