// Package middleware provides HTTP middleware for guictl serve.
//
// Logger writes one W3C Extended Log Format line per request; health
// probes are skipped unless LOG_HEALTH_CHECKS is enabled. Metrics records
// request counts and latencies labelled by the matched mux route.
package middleware
