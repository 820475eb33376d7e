// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for ring and reactor telemetry, backed by
// a dedicated Prometheus registry rather than the ad-hoc map this
// package used to wrap — grounded in the domain-stack wiring of
// github.com/prometheus/client_golang, the dependency the broader
// example pack reaches for whenever it exposes operational metrics.

package control

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRegistry holds the Prometheus collectors for one reactor/ring
// deployment. It is safe for concurrent use; every method delegates to
// the underlying collector's own synchronization.
type MetricsRegistry struct {
	registry *prometheus.Registry

	ringDepth     prometheus.Gauge
	ringEnqueued  prometheus.Counter
	ringDropped   prometheus.Counter
	ringDequeued  prometheus.Counter
	reactorPolls  prometheus.Counter
	reactorEvents prometheus.Counter
	reactorErrors prometheus.Counter
}

// NewMetricsRegistry creates a registry with all collectors registered
// and zeroed.
func NewMetricsRegistry() *MetricsRegistry {
	reg := prometheus.NewRegistry()

	mr := &MetricsRegistry{
		registry: reg,
		ringDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ringreactor",
			Subsystem: "ring",
			Name:      "depth",
			Help:      "Number of committed, unread messages currently in the ring.",
		}),
		ringEnqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ringreactor",
			Subsystem: "ring",
			Name:      "enqueued_total",
			Help:      "Messages successfully reserved and committed for write.",
		}),
		ringDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ringreactor",
			Subsystem: "ring",
			Name:      "dropped_total",
			Help:      "Write reservations rejected because the ring was full.",
		}),
		ringDequeued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ringreactor",
			Subsystem: "ring",
			Name:      "dequeued_total",
			Help:      "Messages successfully reserved and committed for read.",
		}),
		reactorPolls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ringreactor",
			Subsystem: "reactor",
			Name:      "polls_total",
			Help:      "Number of PollOnce calls made across all aggregators.",
		}),
		reactorEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ringreactor",
			Subsystem: "reactor",
			Name:      "events_dispatched_total",
			Help:      "Number of OnEvent dispatches delivered to handlers.",
		}),
		reactorErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ringreactor",
			Subsystem: "reactor",
			Name:      "errors_dispatched_total",
			Help:      "Number of OnError dispatches delivered to handlers.",
		}),
	}

	reg.MustRegister(
		mr.ringDepth,
		mr.ringEnqueued,
		mr.ringDropped,
		mr.ringDequeued,
		mr.reactorPolls,
		mr.reactorEvents,
		mr.reactorErrors,
	)
	return mr
}

// Registry exposes the underlying Prometheus registry so callers can
// mount it behind promhttp.HandlerFor in their own process.
func (mr *MetricsRegistry) Registry() *prometheus.Registry {
	return mr.registry
}

// SetRingDepth records the current number of unread messages in a ring.
func (mr *MetricsRegistry) SetRingDepth(depth uint64) {
	mr.ringDepth.Set(float64(depth))
}

// IncRingEnqueued records one successful write commit.
func (mr *MetricsRegistry) IncRingEnqueued() {
	mr.ringEnqueued.Inc()
}

// IncRingDropped records one write reservation rejected as full.
func (mr *MetricsRegistry) IncRingDropped() {
	mr.ringDropped.Inc()
}

// IncRingDequeued records one successful read commit.
func (mr *MetricsRegistry) IncRingDequeued() {
	mr.ringDequeued.Inc()
}

// IncReactorPolls records one PollOnce call.
func (mr *MetricsRegistry) IncReactorPolls() {
	mr.reactorPolls.Inc()
}

// IncReactorEvents records one OnEvent dispatch.
func (mr *MetricsRegistry) IncReactorEvents() {
	mr.reactorEvents.Inc()
}

// IncReactorErrors records one OnError dispatch.
func (mr *MetricsRegistry) IncReactorErrors() {
	mr.reactorErrors.Inc()
}
