// Package pkgmetrics holds the Prometheus collectors exported by the service.
//
// Collectors are registered on a dedicated registry (not the global default)
// so tests can build as many instances as they like, and so /metrics only
// exposes what the application owns plus the Go runtime collectors.
package pkgmetrics
