package types

// ConnState represents the observable state of a monitored connection.
//
// Only StateConnected makes a connection eligible for inactivity checks.
// Every other state suspends threshold evaluation until the transport
// settles, so a reconnecting client is not flooded with stale timeouts.
type ConnState int

const (
	// StateConnecting indicates the initial connection attempt is in progress.
	StateConnecting ConnState = iota

	// StateConnected indicates the connection is established and traffic flows.
	StateConnected

	// StateReconnecting indicates the connection dropped and is being re-established.
	StateReconnecting

	// StateDisconnected indicates the connection is down with no recovery in progress.
	StateDisconnected
)

// String returns the string representation of the connection state.
func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateReconnecting:
		return "Reconnecting"
	case StateDisconnected:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

// Connection exposes the live state of a monitored connection.
//
// Implementations must be safe for concurrent use and must not block.
// State is queried once per check tick while the monitor's internal
// lock is held, so a slow implementation stalls every Beat and Stop
// caller behind it.
type Connection interface {
	// State returns the connection's current state.
	State() ConnState
}
