package types

// Health represents the monitor's current verdict on connection liveness.
//
// During sustained inactivity the verdict progresses:
//
//	HealthHealthy → HealthWarned → HealthTimedOut
//
// Any check tick that observes recent activity returns the monitor to
// HealthHealthy and re-arms both the warning and timeout notifications.
type Health int

const (
	// HealthHealthy indicates activity was observed within the warning threshold.
	HealthHealthy Health = iota

	// HealthWarned indicates inactivity reached the warning threshold.
	HealthWarned

	// HealthTimedOut indicates inactivity reached the timeout threshold.
	HealthTimedOut
)

// String returns the string representation of the health state.
func (h Health) String() string {
	switch h {
	case HealthHealthy:
		return "Healthy"
	case HealthWarned:
		return "Warned"
	case HealthTimedOut:
		return "TimedOut"
	default:
		return "Unknown"
	}
}
