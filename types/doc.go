// Package types provides core type definitions and interfaces for the Pulse library.
//
// This package contains shared types that are used across multiple packages in the
// Pulse library. By keeping these types in a separate package, we avoid import cycles
// between the main pulse package and its internal implementations.
//
// Key types:
//   - ConnState: Observable connection state
//   - Connection: Monitored connection interface
//   - Health: Monitor liveness verdict
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
