// Package main is the container entry point of the ffmpeg-gui image.
//
// It runs once per container start, before the GUI exists:
//
//  1. Configuration: environment variables are read and logged
//     (see package startup).
//  2. Config store: CONFIG_DIR/config.json is created from the template
//     shipped in the image if, and only if, it does not exist yet. An
//     existing file is never read, rewritten or compared.
//  3. Boot journal: the start is recorded in CONFIG_DIR/bootstrap.db
//     unless JOURNAL_ENABLED=false. Journal failures are warnings.
//  4. Launch preparation: the entry point is checked and marked executable.
//  5. Metrics: when METRICS_TEXTFILE is set, the bootstrap metrics are
//     written there for node_exporter's textfile collector. A start is
//     counted under exactly one outcome.
//  6. Hand-off: the process image is replaced with the entry point
//     (execve), working directory APP_DIR. The
//     supervisor of the base image keeps it running and serves it on the
//     web display (5800) and VNC (5900) ports.
//
// # Exit Codes
//
// A successful start never exits: the GUI takes over the PID. Otherwise:
//
//	1  configuration error (invalid environment)
//	2  filesystem fault while preparing the config store
//	3  launch fault (missing entry point or interpreter, exec failure)
//
// Operators inspect the result afterwards with guictl (cmd/guictl).
package main
