package lsevent

import (
	"github.com/lsevent/dispatcher/config"
	"github.com/lsevent/dispatcher/internal/core/eventbus"
	"github.com/lsevent/dispatcher/pkg/interfaces"
)

// Dispatcher is the public handle for a named-event dispatcher bound to
// one source. See internal/core/eventbus for the implementation.
type Dispatcher = interfaces.Dispatcher

// Event is a named attachment point for callbacks under one Dispatcher.
type Event = interfaces.Event

// TriggerRecord is a pre-allocated bundle obtained from
// Dispatcher.PrepareTrigger for allocation-free triggering.
type TriggerRecord = interfaces.TriggerRecord

// Option configures a Dispatcher at construction time.
type Option = eventbus.Option

// WithMetricsConfig attaches Prometheus collectors under cfg's namespace.
func WithMetricsConfig(cfg config.MetricsConfig) Option {
	return eventbus.WithMetricsConfig(cfg)
}

// New creates a dispatcher bound to source using default configuration.
func New(source interface{}, opts ...Option) (Dispatcher, error) {
	return eventbus.New(source, opts...)
}

// NewWithConfig creates a dispatcher bound to source, deriving its
// metrics, queue depth, and arena sizing from cfg, and installing
// cfg.Logging as the process's default logger.
func NewWithConfig(source interface{}, cfg *config.Config) (Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Logging.Install()
	return eventbus.New(source,
		eventbus.WithMetricsConfig(cfg.Metrics),
		eventbus.WithQueueConfig(cfg.Queue),
		eventbus.WithMemoryConfig(cfg.Memory),
	)
}
