package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every ffmpeg_gui_* collector. It is kept apart from the
// default registry so the launcher's textfile export carries no go_* or
// process_* series that would clash with node_exporter's own.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Bootstrap metrics
var (
	BootstrapRunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffmpeg_gui_bootstrap_runs_total",
			Help: "Total number of container bootstrap runs by outcome",
		},
		[]string{"outcome"}, // "launching", "filesystem_fault", "launch_fault"
	)

	BootstrapDuration = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffmpeg_gui_bootstrap_duration_seconds",
			Help: "Duration of the last bootstrap run up to application hand-off",
		},
	)

	BootstrapLastRunTimestamp = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffmpeg_gui_bootstrap_last_run_timestamp",
			Help: "Unix timestamp of the last bootstrap run",
		},
	)

	ConfigSeededTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "ffmpeg_gui_config_seeded_total",
			Help: "Number of times the configuration was seeded from the template",
		},
	)
)

// Config store metrics
var (
	ConfigStorePresent = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffmpeg_gui_config_store_present",
			Help: "Whether the configuration file exists (1 = present, 0 = absent)",
		},
	)

	ConfigStoreBytes = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffmpeg_gui_config_store_bytes",
			Help: "Size of the configuration file in bytes",
		},
	)

	ConfigStoreCustomized = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffmpeg_gui_config_store_customized",
			Help: "Whether the configuration differs from the shipped template (1 = customized)",
		},
	)

	ConfigValidationIssues = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ffmpeg_gui_config_validation_issues",
			Help: "Number of validation issues found in the configuration by severity",
		},
		[]string{"severity"}, // "error", "warning"
	)
)

// HTTP metrics (guictl serve)
var (
	HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffmpeg_gui_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ffmpeg_gui_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffmpeg_gui_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Journal metrics
var (
	JournalWritesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffmpeg_gui_journal_writes_total",
			Help: "Total number of boot journal writes",
		},
		[]string{"status"},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ffmpeg_gui_filesystem_operation_duration_seconds",
			Help:    "Duration of filesystem operations by volume and operation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"volume", "operation"},
	)

	FilesystemOperationErrors = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffmpeg_gui_filesystem_operation_errors_total",
			Help: "Total number of failed filesystem operations",
		},
		[]string{"volume", "operation"},
	)

	FilesystemRetryAttempts = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffmpeg_gui_filesystem_retry_attempts_total",
			Help: "Total number of retries after NFS stale file handle errors",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetrySuccess = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffmpeg_gui_filesystem_retry_success_total",
			Help: "Total number of operations that succeeded after retrying",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryFailures = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffmpeg_gui_filesystem_retry_failures_total",
			Help: "Total number of operations that failed after exhausting retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffmpeg_gui_filesystem_stale_errors_total",
			Help: "Total number of ESTALE errors observed",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ffmpeg_gui_filesystem_retry_duration_seconds",
			Help:    "Total duration of retried filesystem operations",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
		[]string{"operation", "volume"},
	)
)
