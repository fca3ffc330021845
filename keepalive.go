package pulse

import (
	"fmt"
	"time"
)

// defaultKeepAliveTimeout is used when no timeout is supplied. It matches
// the keep-alive timeout commonly negotiated by long-lived connection
// protocols.
const defaultKeepAliveTimeout = 20 * time.Second

// KeepAlive holds the timing thresholds for connection health checks and
// tracks when activity was last observed.
//
// A KeepAlive is shared between the caller and a Monitor. The monitor reads
// the thresholds and the last-activity timestamp on every check tick, and
// Beat advances the timestamp. Threshold fields must not be mutated while a
// schedule is active; restart the monitor with new timings instead.
//
// All duration fields support YAML strings such as "2s" or "1m30s":
//
//	checkInterval: 2s
//	warningThreshold: 13s
//	timeoutThreshold: 20s
type KeepAlive struct {
	// CheckInterval is the period between health check ticks. Must be positive.
	CheckInterval time.Duration `yaml:"checkInterval"`

	// WarningThreshold is the inactivity span after which the warning fires.
	// Must be positive and below TimeoutThreshold.
	WarningThreshold time.Duration `yaml:"warningThreshold"`

	// TimeoutThreshold is the inactivity span after which the timeout fires.
	TimeoutThreshold time.Duration `yaml:"timeoutThreshold"`

	// lastActivity is the most recent observed activity. Once a schedule is
	// active it is guarded by the owning monitor's lock; read it through
	// Monitor.LastActivity.
	lastActivity time.Time
}

// NewKeepAlive creates keep-alive data with explicit timings.
//
// The last-activity clock starts at the time of the call.
//
// Parameters:
//   - checkInterval: Period between health check ticks
//   - warningThreshold: Inactivity span that triggers the warning
//   - timeoutThreshold: Inactivity span that triggers the timeout
//
// Returns:
//   - *KeepAlive: Keep-alive data ready for Monitor.Start
func NewKeepAlive(checkInterval, warningThreshold, timeoutThreshold time.Duration) *KeepAlive {
	return &KeepAlive{
		CheckInterval:    checkInterval,
		WarningThreshold: warningThreshold,
		TimeoutThreshold: timeoutThreshold,
		lastActivity:     time.Now(),
	}
}

// KeepAliveFromTimeout derives keep-alive timings from a single timeout.
//
// The warning threshold is two thirds of the timeout, and the check interval
// one third of the remaining span, so the monitor ticks roughly three times
// between the warning and the timeout firing.
//
// Parameters:
//   - timeout: Inactivity span that triggers the timeout
//
// Returns:
//   - *KeepAlive: Keep-alive data with derived warning threshold and interval
//
// Example:
//
//	ka := pulse.KeepAliveFromTimeout(30 * time.Second)
//	// warning at 20s, checked every ~3.3s
func KeepAliveFromTimeout(timeout time.Duration) *KeepAlive {
	warning := timeout * 2 / 3

	return &KeepAlive{
		CheckInterval:    (timeout - warning) / 3,
		WarningThreshold: warning,
		TimeoutThreshold: timeout,
		lastActivity:     time.Now(),
	}
}

// DefaultKeepAlive creates keep-alive data derived from the default 20s timeout.
func DefaultKeepAlive() *KeepAlive {
	return KeepAliveFromTimeout(defaultKeepAliveTimeout)
}

// ApplyDefaults fills unset keep-alive timings in place.
//
// A zero TimeoutThreshold defaults to 20s. A zero WarningThreshold is derived
// as two thirds of the timeout, and a zero CheckInterval as one third of the
// span between them, mirroring KeepAliveFromTimeout. Useful for KeepAlive
// values decoded from partial YAML.
func ApplyDefaults(k *KeepAlive) {
	if k.TimeoutThreshold == 0 {
		k.TimeoutThreshold = defaultKeepAliveTimeout
	}
	if k.WarningThreshold == 0 {
		k.WarningThreshold = k.TimeoutThreshold * 2 / 3
	}
	if k.CheckInterval == 0 {
		k.CheckInterval = (k.TimeoutThreshold - k.WarningThreshold) / 3
	}
}

// Validate checks that the keep-alive timings are usable for monitoring.
//
// Returns:
//   - error: Description of the first violated constraint, nil if valid
func (k *KeepAlive) Validate() error {
	if k.CheckInterval <= 0 {
		return fmt.Errorf("check interval must be positive, got %v", k.CheckInterval)
	}
	if k.WarningThreshold <= 0 {
		return fmt.Errorf("warning threshold must be positive, got %v", k.WarningThreshold)
	}
	if k.TimeoutThreshold <= k.WarningThreshold {
		return fmt.Errorf("timeout threshold (%v) must exceed warning threshold (%v)",
			k.TimeoutThreshold, k.WarningThreshold)
	}

	return nil
}
