// Package metrics provides Prometheus instrumentation for the ffmpeg-gui
// container bootstrap and the guictl status server.
//
// All collectors live in a dedicated [Registry] and are prefixed with
// "ffmpeg_gui_".
//
// # Metric Categories
//
// ## Bootstrap Metrics
//
//   - BootstrapRunsTotal: Counter of bootstrap runs by outcome
//   - BootstrapDuration: Gauge of the last run's duration up to hand-off
//   - BootstrapLastRunTimestamp: Gauge of the last run time
//   - ConfigSeededTotal: Counter of first-run template copies
//
// ## Config Store Metrics
//
//   - ConfigStorePresent, ConfigStoreBytes, ConfigStoreCustomized
//   - ConfigValidationIssues: Gauge of schema issues by severity
//
// ## HTTP Metrics (guictl serve)
//
//   - HTTPRequestsTotal, HTTPRequestDuration: labeled by mux route template
//   - HTTPRequestsInFlight
//
// ## Filesystem Metrics
//
// Recorded through [NewFilesystemObserver], labeled by volume ("config",
// "app") and operation, including NFS stale-handle retry counters.
//
// # Export
//
// The launcher exits by exec'ing the GUI, so it exports through
// [WriteTextfile] (node_exporter textfile collector) instead of serving.
// guictl serve exposes [Gatherer] on /metrics and runs a [Collector] that
// refreshes the config store gauges, since the GUI edits config.json
// behind its back.
package metrics
