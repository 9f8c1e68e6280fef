package metrics

// Outcome labels for BootstrapRunsTotal.
const (
	OutcomeLaunching       = "launching"
	OutcomeFilesystemFault = "filesystem_fault"
	OutcomeLaunchFault     = "launch_fault"
)

// Volume labels used by the filesystem observer.
var Volumes = []string{"config", "app", "unknown"}

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first scrape (or textfile write).
func InitializeMetrics() {
	for _, outcome := range []string{OutcomeLaunching, OutcomeFilesystemFault, OutcomeLaunchFault} {
		BootstrapRunsTotal.WithLabelValues(outcome)
	}

	for _, severity := range []string{"error", "warning"} {
		ConfigValidationIssues.WithLabelValues(severity)
	}

	for _, status := range []string{"success", "error"} {
		JournalWritesTotal.WithLabelValues(status)
	}

	fsOps := []string{"stat", "open", "mkdir", "write", "link", "chmod"}
	for _, vol := range Volumes {
		for _, op := range fsOps {
			FilesystemOperationDuration.WithLabelValues(vol, op)
			FilesystemOperationErrors.WithLabelValues(vol, op)
		}
	}

	for _, op := range []string{"stat", "open"} {
		for _, vol := range Volumes {
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
		}
	}
}
