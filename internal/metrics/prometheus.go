package metrics

import (
	"sync"

	"github.com/arloliu/pulse/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metric registration is deferred until first use so that constructing a
// collector never panics on duplicate registration; the first recorded
// metric registers the full set exactly once.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Monitor metrics
	beats          prometheus.Counter
	ticks          *prometheus.CounterVec
	ticksSkipped   *prometheus.CounterVec
	warningElapsed prometheus.Histogram
	timeoutElapsed prometheus.Histogram
	recoveries     prometheus.Counter
	healthStatus   prometheus.Gauge
	changesDropped prometheus.Counter

	// Report metrics
	reportWrites *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "pulse" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "pulse"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.beats = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "beats_total",
			Help:      "Total activity reports that reset the inactivity clock.",
		})

		p.ticks = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "ticks_total",
			Help:      "Total completed check ticks by concluded health.",
		}, []string{"health"})

		p.ticksSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "ticks_skipped_total",
			Help:      "Total ticks skipped because the connection was not connected, by connection state.",
		}, []string{"conn_state"})

		p.warningElapsed = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "warning_elapsed_seconds",
			Help:      "Observed inactivity span in seconds when a warning fired.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms .. ~51s
		})

		p.timeoutElapsed = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "timeout_elapsed_seconds",
			Help:      "Observed inactivity span in seconds when a timeout fired.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		})

		p.recoveries = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "recoveries_total",
			Help:      "Total returns to healthy after a warning or timeout episode.",
		})

		p.healthStatus = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "health_status",
			Help:      "Current health state (0=healthy,1=warned,2=timed_out).",
		})

		p.changesDropped = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "monitor",
			Name:      "health_changes_dropped_total",
			Help:      "Health change notifications dropped due to slow subscribers.",
		})

		p.reportWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "report",
			Name:      "writes_total",
			Help:      "Total health report write outcomes (success,failure).",
		}, []string{"result"})

		p.reg.MustRegister(p.beats)
		p.reg.MustRegister(p.ticks)
		p.reg.MustRegister(p.ticksSkipped)
		p.reg.MustRegister(p.warningElapsed)
		p.reg.MustRegister(p.timeoutElapsed)
		p.reg.MustRegister(p.recoveries)
		p.reg.MustRegister(p.healthStatus)
		p.reg.MustRegister(p.changesDropped)
		p.reg.MustRegister(p.reportWrites)
	})
}

// MonitorMetrics implementation

// RecordBeat increments the activity counter.
func (p *PrometheusCollector) RecordBeat() {
	p.ensureRegistered()
	p.beats.Inc()
}

// RecordTick increments the tick counter for the concluded health.
func (p *PrometheusCollector) RecordTick(health types.Health) {
	p.ensureRegistered()
	p.ticks.WithLabelValues(health.String()).Inc()
}

// RecordTickSkipped increments the skipped tick counter for the observed state.
func (p *PrometheusCollector) RecordTickSkipped(state types.ConnState) {
	p.ensureRegistered()
	p.ticksSkipped.WithLabelValues(state.String()).Inc()
}

// RecordWarning observes the inactivity span at the warning transition.
func (p *PrometheusCollector) RecordWarning(elapsed float64) {
	p.ensureRegistered()
	p.warningElapsed.Observe(elapsed)
}

// RecordTimeout observes the inactivity span at the timeout transition.
func (p *PrometheusCollector) RecordTimeout(elapsed float64) {
	p.ensureRegistered()
	p.timeoutElapsed.Observe(elapsed)
}

// RecordRecovery increments the recovery counter.
func (p *PrometheusCollector) RecordRecovery() {
	p.ensureRegistered()
	p.recoveries.Inc()
}

// SetHealth sets the health status gauge.
func (p *PrometheusCollector) SetHealth(health types.Health) {
	p.ensureRegistered()
	p.healthStatus.Set(float64(health))
}

// RecordHealthChangeDropped increments the dropped notification counter.
func (p *PrometheusCollector) RecordHealthChangeDropped() {
	p.ensureRegistered()
	p.changesDropped.Inc()
}

// ReportMetrics implementation

// RecordReportWrite records a report write outcome.
func (p *PrometheusCollector) RecordReportWrite(success bool) {
	p.ensureRegistered()
	if success {
		p.reportWrites.WithLabelValues("success").Inc()
	} else {
		p.reportWrites.WithLabelValues("failure").Inc()
	}
}
