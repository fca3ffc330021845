// Package natsconn adapts a NATS connection for use with pulse monitors.
//
// Wrap exposes a *nats.Conn as a types.Connection so a Monitor can gate its
// checks on the real transport state, and BeatOnMsg turns delivered messages
// into activity reports.
package natsconn

import (
	"github.com/nats-io/nats.go"

	"github.com/arloliu/pulse"
	"github.com/arloliu/pulse/types"
)

// Conn exposes a *nats.Conn as a types.Connection.
type Conn struct {
	nc *nats.Conn
}

// Compile-time assertion that Conn implements Connection.
var _ types.Connection = (*Conn)(nil)

// Wrap adapts nc for use with a Monitor.
//
// Parameters:
//   - nc: NATS connection to expose; may be nil
//
// Returns:
//   - *Conn: Adapter reporting the connection's live state
func Wrap(nc *nats.Conn) *Conn {
	return &Conn{nc: nc}
}

// State maps the NATS connection status onto the monitor's connection states.
//
// Draining connections still deliver traffic and count as connected. A nil
// adapter or nil underlying connection reports disconnected.
func (c *Conn) State() types.ConnState {
	if c == nil || c.nc == nil {
		return types.StateDisconnected
	}

	switch c.nc.Status() {
	case nats.CONNECTING:
		return types.StateConnecting
	case nats.CONNECTED, nats.DRAINING_SUBS, nats.DRAINING_PUBS:
		return types.StateConnected
	case nats.RECONNECTING:
		return types.StateReconnecting
	default: // DISCONNECTED, CLOSED
		return types.StateDisconnected
	}
}

// BeatOnMsg wraps h so every delivered message beats mon before handling.
//
// Subscribe with the returned handler to make inbound traffic reset the
// monitor's inactivity clock:
//
//	sub, err := nc.Subscribe("events.>", natsconn.BeatOnMsg(mon, handle))
//
// A nil h still beats the monitor and discards the message.
func BeatOnMsg(mon *pulse.Monitor, h nats.MsgHandler) nats.MsgHandler {
	return func(msg *nats.Msg) {
		mon.Beat()
		if h != nil {
			h(msg)
		}
	}
}
