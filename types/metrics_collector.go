package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods are called from internal goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	MonitorMetrics
	ReportMetrics
}

// MonitorMetrics defines metrics for connection health monitoring.
type MonitorMetrics interface {
	// RecordBeat records an activity report that reset the inactivity clock.
	RecordBeat()

	// RecordTick records one completed check tick and the health it concluded.
	//
	// Parameters:
	//   - health: Health state after the tick's threshold evaluation
	RecordTick(health Health)

	// RecordTickSkipped records a tick that performed no threshold evaluation
	// because the connection was not in a connected state.
	//
	// Parameters:
	//   - state: Connection state observed at the skipped tick
	RecordTickSkipped(state ConnState)

	// RecordWarning records a transition into the warned state.
	//
	// Parameters:
	//   - elapsed: Inactivity span in seconds when the warning fired
	RecordWarning(elapsed float64)

	// RecordTimeout records a transition into the timed-out state.
	//
	// Parameters:
	//   - elapsed: Inactivity span in seconds when the timeout fired
	RecordTimeout(elapsed float64)

	// RecordRecovery records a return to the healthy state after a
	// warning or timeout episode.
	RecordRecovery()

	// SetHealth sets the current health state (gauge metric).
	SetHealth(health Health)

	// RecordHealthChangeDropped records when health change notifications are
	// dropped due to slow subscribers.
	RecordHealthChangeDropped()
}

// ReportMetrics defines metrics for publishing health reports to external stores.
type ReportMetrics interface {
	// RecordReportWrite records a health report write attempt.
	//
	// Parameters:
	//   - success: true if the write succeeded, false otherwise
	RecordReportWrite(success bool)
}
