// Package config provides the dispatcher's configuration types.
package config

import "fmt"

// MetricsConfig controls whether a dispatcher registers Prometheus
// collectors for its trigger and callback activity.
type MetricsConfig struct {
	// Enabled turns on the prometheus.Collector wiring in
	// internal/core/eventbus.
	// Default: true
	Enabled bool `json:"enabled"`

	// Namespace prefixes every metric name registered by this dispatcher.
	// Default: "lsevent"
	Namespace string `json:"namespace"`
}

// DefaultMetricsConfig returns the default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "lsevent",
	}
}

// Validate reports whether c is internally consistent.
func (c *MetricsConfig) Validate() error {
	if c.Enabled && c.Namespace == "" {
		return fmt.Errorf("metrics: namespace must be set when enabled")
	}
	return nil
}
