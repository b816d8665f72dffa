package observe

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/odvcencio/furry-store/store"
)

// Metrics exports dispatch statistics as prometheus collectors.
type Metrics struct {
	dispatches  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	sliceWrites *prometheus.CounterVec
	listeners   prometheus.Gauge
	queued      prometheus.Gauge
	version     prometheus.Gauge
}

// NewMetrics creates unregistered collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "dispatches_total",
			Help:      "Applied actions by type and whether the state changed.",
		}, []string{"type", "changed"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent reducing and notifying per action.",
			Buckets:   []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 1e-1, 1},
		}, []string{"type"}),
		sliceWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "slice_changes_total",
			Help:      "State changes by namespace.",
		}, []string{"namespace"}),
		listeners: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "listeners",
			Help:      "Listeners notified by the last state change.",
		}),
		queued: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "queued_actions",
			Help:      "Actions waiting behind the last applied action.",
		}),
		version: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "version",
			Help:      "Number of state changes applied.",
		}),
	}
}

// Register adds the collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	var errs []error
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.dispatches, m.duration, m.sliceWrites, m.listeners, m.queued, m.version}
}

// ObserveDispatch records stats.
func (m *Metrics) ObserveDispatch(stats store.DispatchStats) {
	m.dispatches.WithLabelValues(stats.Action.Type, strconv.FormatBool(stats.Changed)).Inc()
	m.duration.WithLabelValues(stats.Action.Type).Observe(stats.TotalDuration.Seconds())
	m.queued.Set(float64(stats.Queued))
	m.version.Set(float64(stats.Version))
	if !stats.Changed {
		return
	}
	m.listeners.Set(float64(stats.Listeners))
	for _, ns := range stats.Namespaces {
		m.sliceWrites.WithLabelValues(ns).Inc()
	}
}

var _ store.Observer = (*Metrics)(nil)
