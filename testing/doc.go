// Package testing provides test utilities for the Pulse library.
//
// This package offers helpers for setting up test environments, particularly
// embedded NATS servers for integration testing. It follows Go's convention
// of providing testing utilities in a dedicated package (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single NATS server with JetStream
//   - CreateJetStreamKV: Convenience wrapper for KV bucket creation
//   - StubConn: Connection stub with a settable state
//   - NewTestLogger: Logger that writes to testing.T
//
// Example usage:
//
//	import (
//	    "testing"
//	    pulsetest "github.com/arloliu/pulse/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    _, nc := pulsetest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
