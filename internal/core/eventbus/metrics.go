package eventbus

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors a Dispatcher updates as it
// dispatches moments. Each Dispatcher that enables metrics gets its own
// private registry rather than registering against the global default, so
// creating several dispatchers under the same namespace (as tests often
// do) never collides on metric registration.
type Metrics struct {
	registry      *prometheus.Registry
	triggersTotal *prometheus.CounterVec
	handledTotal  *prometheus.CounterVec
}

// NewMetrics builds and registers the dispatcher's collectors under
// namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		triggersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "triggers_total",
			Help:      "Total number of moments dispatched, by event name.",
		}, []string{"event"}),
		handledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handled_total",
			Help:      "Total number of dispatched moments whose handled flag ended up true, by event name.",
		}, []string{"event"}),
	}
	m.registry.MustRegister(m.triggersTotal, m.handledTotal)
	return m
}

// ObserveTrigger records one completed moment dispatch for event.
func (m *Metrics) ObserveTrigger(event string, handled bool) {
	m.triggersTotal.WithLabelValues(event).Inc()
	if handled {
		m.handledTotal.WithLabelValues(event).Inc()
	}
}

// Registry exposes the dispatcher's private registry, e.g. for mounting
// under an HTTP handler with promhttp.HandlerFor.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
