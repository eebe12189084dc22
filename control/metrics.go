// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus registry and the api.ServerMetrics implementation.

package control

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/momentics/hioload-tcp/api"
)

// MetricsRegistry owns a Prometheus registry for one process.
type MetricsRegistry struct {
	reg *prometheus.Registry
}

// NewMetricsRegistry creates a registry with Go runtime and process collectors.
func NewMetricsRegistry() *MetricsRegistry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &MetricsRegistry{reg: reg}
}

// Registry exposes the underlying registry.
func (mr *MetricsRegistry) Registry() *prometheus.Registry { return mr.reg }

// Handler serves the registry in the Prometheus exposition format.
func (mr *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(mr.reg, promhttp.HandlerOpts{Registry: mr.reg})
}

// RegisterQueueDepth exports depth() as the gauge hioload_queue_depth{queue=name}.
func (mr *MetricsRegistry) RegisterQueueDepth(name string, depth func() int) error {
	return mr.reg.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name:        "hioload_queue_depth",
			Help:        "Number of connections waiting in the queue",
			ConstLabels: prometheus.Labels{"queue": name},
		},
		func() float64 { return float64(depth()) },
	))
}

// serverMetrics is the Prometheus implementation of api.ServerMetrics.
type serverMetrics struct {
	accepted prometheus.Counter
	failed   prometheus.Counter
	dropped  prometheus.Counter
	pushWait prometheus.Histogram
	running  prometheus.Gauge
}

// NewServerMetrics registers acceptor metrics labelled server=name.
// Each name may be registered once per registry.
func (mr *MetricsRegistry) NewServerMetrics(name string) api.ServerMetrics {
	labels := prometheus.Labels{"server": name}
	f := promauto.With(mr.reg)
	return &serverMetrics{
		accepted: f.NewCounter(prometheus.CounterOpts{
			Name:        "hioload_connections_accepted_total",
			Help:        "Connections returned by accept",
			ConstLabels: labels,
		}),
		failed: f.NewCounter(prometheus.CounterOpts{
			Name:        "hioload_accept_failures_total",
			Help:        "Failed accept calls",
			ConstLabels: labels,
		}),
		dropped: f.NewCounter(prometheus.CounterOpts{
			Name:        "hioload_connections_dropped_total",
			Help:        "Accepted connections closed at shutdown before reaching the queue",
			ConstLabels: labels,
		}),
		pushWait: f.NewHistogram(prometheus.HistogramOpts{
			Name:        "hioload_queue_push_wait_milliseconds",
			Help:        "Time the acceptor waited for queue space",
			ConstLabels: labels,
			Buckets: []float64{
				0.1,  // 100us
				1,    // 1ms
				10,   // 10ms
				100,  // 100ms
				1000, // 1s
			},
		}),
		running: f.NewGauge(prometheus.GaugeOpts{
			Name:        "hioload_server_running",
			Help:        "1 while the acceptor is running",
			ConstLabels: labels,
		}),
	}
}

func (m *serverMetrics) ConnectionAccepted() { m.accepted.Inc() }

func (m *serverMetrics) AcceptFailed() { m.failed.Inc() }

func (m *serverMetrics) ConnectionDropped() { m.dropped.Inc() }

func (m *serverMetrics) ObservePushWait(d time.Duration) {
	m.pushWait.Observe(float64(d) / float64(time.Millisecond))
}

func (m *serverMetrics) SetRunning(running bool) {
	if running {
		m.running.Set(1)
		return
	}
	m.running.Set(0)
}
