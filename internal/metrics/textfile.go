package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes the current state of Registry in the Prometheus text
// format to path, for pickup by node_exporter's textfile collector. The
// launcher replaces itself with the GUI process, so a scrape endpoint would
// not outlive it; the textfile does.
//
// The parent directory is created if needed. The write goes through a temp
// file and rename, so a collector never reads a partial file.
func WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics textfile directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// Gatherer returns a gatherer covering both the ffmpeg_gui_* registry and
// the default registry (Go runtime and process collectors).
func Gatherer() prometheus.Gatherer {
	return prometheus.Gatherers{Registry, prometheus.DefaultGatherer}
}
