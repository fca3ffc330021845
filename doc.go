// Package pulse provides a Go library for monitoring the liveness of
// long-lived connections through inactivity thresholds.
//
// Pulse detects silently dead connections: the client reports every piece
// of inbound traffic to a Monitor, and the Monitor periodically measures how
// long the connection has been quiet. Sustained inactivity first raises a
// warning and then a timeout, so the application can alert or force a
// reconnect before users notice.
//
// # Quick Start
//
// Basic usage with timings derived from a 20s timeout:
//
//	import "github.com/arloliu/pulse"
//
//	mon := pulse.NewMonitor()
//	mon.SetOnWarning(func() { log.Println("connection is quiet") })
//	mon.SetOnTimeout(func() { log.Println("connection looks dead") })
//
//	if err := mon.Start(pulse.DefaultKeepAlive(), conn); err != nil {
//	    log.Fatal(err)
//	}
//	defer mon.Stop()
//
//	// Whenever traffic arrives on the connection:
//	mon.Beat()
//
// # Key Features
//
//   - Threshold Progression: Healthy → Warned → TimedOut, with at most one
//     callback per threshold per inactivity episode
//   - Self-Resetting: any activity returns the monitor to Healthy and
//     re-arms both notifications
//   - Connection-Aware: checks are suspended while the connection is
//     connecting, reconnecting, or disconnected
//   - Reentrant Callbacks: callbacks run outside the monitor's lock and may
//     call Stop, Beat, or Start
//   - Health Subscriptions: channel-based fan-out of health transitions
//
// # Architecture
//
// A Monitor owns one background schedule per Start/Stop pair. Each tick
// evaluates the inactivity span against the keep-alive thresholds:
//
//	elapsed >= TimeoutThreshold  → TimedOut (timeout callback, once)
//	elapsed >= WarningThreshold  → Warned (warning callback, once)
//	otherwise                    → Healthy (both re-armed)
//
// The natsconn package adapts a *nats.Conn to the monitor's Connection
// interface, and the report package mirrors health transitions into a
// JetStream KV bucket for external observability.
//
// See the examples/ directory for complete working examples.
package pulse
