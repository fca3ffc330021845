package testing

import (
	"sync/atomic"

	"github.com/arloliu/pulse/types"
)

// StubConn is a Connection with a settable state for driving monitor
// behavior in tests. Safe for concurrent use: tests flip the state while
// the monitor's check tick reads it.
type StubConn struct {
	state atomic.Int32
}

// Compile-time assertion that StubConn implements Connection.
var _ types.Connection = (*StubConn)(nil)

// NewStubConn creates a stub connection in the given state.
//
// Parameters:
//   - state: Initial connection state
//
// Returns:
//   - *StubConn: Stub reporting the given state until changed
//
// Example:
//
//	conn := pulsetest.NewStubConn(types.StateConnected)
//	err := mon.Start(ka, conn)
//	conn.SetState(types.StateDisconnected) // checks are now skipped
func NewStubConn(state types.ConnState) *StubConn {
	c := &StubConn{}
	c.state.Store(int32(state)) //nolint:gosec // G115: state is bounded enum, safe conversion

	return c
}

// State returns the stub's current state.
func (c *StubConn) State() types.ConnState {
	return types.ConnState(c.state.Load())
}

// SetState atomically switches the stub's state.
func (c *StubConn) SetState(state types.ConnState) {
	c.state.Store(int32(state)) //nolint:gosec // G115: state is bounded enum, safe conversion
}
