// Package config provides the dispatcher's configuration types.
//
// A Config embeds one sub-config per concern, each independently
// constructible via its Default*Config and independently checked via its
// Validate. Load a Config, override the fields you care about, then call
// Validate before handing it to internal/app.
//
//	cfg := config.NewConfig()
//	cfg.Metrics.Namespace = "myapp_dispatcher"
//	if err := cfg.Validate(); err != nil {
//	    ...
//	}
package config

// Config is the dispatcher process's complete configuration.
type Config struct {
	// Queue bounds the moment queue.
	Queue QueueConfig `json:"queue"`

	// Memory controls per-moment arena sizing.
	Memory MemoryConfig `json:"memory"`

	// Metrics controls Prometheus collector registration.
	Metrics MetricsConfig `json:"metrics"`

	// Logging controls the installed logger.
	Logging LoggingConfig `json:"logging"`
}

// NewConfig returns a Config populated with every sub-config's defaults.
func NewConfig() *Config {
	return &Config{
		Queue:   DefaultQueueConfig(),
		Memory:  DefaultMemoryConfig(),
		Metrics: DefaultMetricsConfig(),
		Logging: DefaultLoggingConfig(),
	}
}

// Validate checks every sub-config in turn, returning the first error.
func (c *Config) Validate() error {
	if err := c.Queue.Validate(); err != nil {
		return err
	}
	if err := c.Memory.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}
