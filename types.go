package pulse

import "github.com/arloliu/pulse/types"

// Re-export types from the internal types package.
//
// This file provides a stable, backward-compatible public API for the
// library's core types and interfaces. It uses type aliases to re-export
// definitions from the `types` subpackage, which contains the actual
// implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root `pulse`
// package, while still providing a convenient `pulse.Health`,
// `pulse.Connection`, etc. for users.
type (
	ConnState = types.ConnState
	Health    = types.Health
)

// Re-export interfaces from the internal types package for convenience.
type (
	Connection       = types.Connection
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
)

// Re-export ConnState constants from the internal types package.
const (
	StateConnecting   = types.StateConnecting
	StateConnected    = types.StateConnected
	StateReconnecting = types.StateReconnecting
	StateDisconnected = types.StateDisconnected
)

// Re-export Health constants from the internal types package.
const (
	HealthHealthy  = types.HealthHealthy
	HealthWarned   = types.HealthWarned
	HealthTimedOut = types.HealthTimedOut
)
