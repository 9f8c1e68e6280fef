// Package handlers provides the HTTP handlers behind guictl serve.
//
// The API is read-only. It reports on the Config Store, lists recent
// container starts from the boot journal and exposes Prometheus metrics:
//   - /healthz, /livez, /readyz for orchestrator probes
//   - /api/config for the full status report
//   - /api/boots for the boot journal
//   - /api/version for build information
package handlers
