package lob

import "github.com/prometheus/client_golang/prometheus"

// newTestRegistry returns an isolated registry so tests that attach
// Metrics don't collide with each other or with the default registry.
func newTestRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}
