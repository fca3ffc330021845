// Package metrics provides MetricsCollector implementations for the Pulse library.
package metrics

import "github.com/arloliu/pulse/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	mon := pulse.NewMonitor(pulse.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// MonitorMetrics implementation

// RecordBeat discards the activity metric.
func (n *NopMetrics) RecordBeat() {
	// No-op
}

// RecordTick discards the tick metric.
func (n *NopMetrics) RecordTick(_ /* health */ types.Health) {
	// No-op
}

// RecordTickSkipped discards the skipped tick metric.
func (n *NopMetrics) RecordTickSkipped(_ /* state */ types.ConnState) {
	// No-op
}

// RecordWarning discards the warning transition metric.
func (n *NopMetrics) RecordWarning(_ /* elapsed */ float64) {
	// No-op
}

// RecordTimeout discards the timeout transition metric.
func (n *NopMetrics) RecordTimeout(_ /* elapsed */ float64) {
	// No-op
}

// RecordRecovery discards the recovery metric.
func (n *NopMetrics) RecordRecovery() {
	// No-op
}

// SetHealth discards the health gauge metric.
func (n *NopMetrics) SetHealth(_ /* health */ types.Health) {
	// No-op
}

// RecordHealthChangeDropped discards the dropped notification metric.
func (n *NopMetrics) RecordHealthChangeDropped() {
	// No-op
}

// ReportMetrics implementation

// RecordReportWrite discards the report write metric.
func (n *NopMetrics) RecordReportWrite(_ /* success */ bool) {
	// No-op
}
