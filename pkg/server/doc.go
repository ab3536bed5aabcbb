// Package server provides the HTTP service behind "polaris serve".
//
// Endpoints:
//
//	GET  /healthz            - liveness probe
//	GET  /metrics            - Prometheus metrics (when enabled)
//	GET  /v1/models          - discovered models (cached snapshot)
//	POST /v1/usage/reports   - build a usage report and record it
//	GET  /v1/usage/reports   - recent recorded reports
//
// The model snapshot is filled on first request and replaced by the catalog
// refresher on its cron schedule; ?refresh=true forces a live discovery.
package server
