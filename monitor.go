package pulse

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/pulse/internal/logger"
	"github.com/arloliu/pulse/internal/metrics"
	"github.com/arloliu/pulse/types"
)

// Monitor watches a connection for inactivity and raises warning and timeout
// notifications when activity stops flowing.
//
// Monitor is the main entry point of the Pulse library. It handles:
//   - Periodic inactivity checks against configurable thresholds
//   - Healthy → Warned → TimedOut transitions with at most one callback
//     per threshold per inactivity episode
//   - Health change fan-out to channel subscribers
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Callbacks run outside the monitor's lock, so they may call back into
//     the monitor (including Stop) without deadlocking
//
// Lifecycle:
//   - Create with NewMonitor()
//   - Call Start() with keep-alive timings and the connection to watch
//   - Call Beat() whenever traffic arrives on the connection
//   - Call Stop() to halt checks; Start may be called again afterwards
type Monitor struct {
	logger  types.Logger
	metrics types.MetricsCollector
	nowFunc func() time.Time // for testing

	// mu guards every field below. The check tick performs its full
	// read-modify-write under this lock; callbacks are selected under it
	// and invoked after release.
	mu        sync.Mutex
	keepAlive *KeepAlive
	running   bool
	warned    bool
	timedOut  bool

	// gen identifies the active schedule. Ticks carry the generation of
	// the Start that spawned them and refuse to act on a mismatch, so a
	// tick from a superseded schedule can never touch fresh state.
	gen uint64

	onWarning func()
	onTimeout func()

	ticker *time.Ticker
	stopCh chan struct{}

	subscribers *xsync.Map[uint64, *healthSubscriber]
	nextSubID   atomic.Uint64
}

// NewMonitor creates a monitor with no active schedule.
//
// Parameters:
//   - opts: Optional dependencies (logger, metrics)
//
// Returns:
//   - *Monitor: A new monitor; call Start to begin checking
//
// Example:
//
//	mon := pulse.NewMonitor(pulse.WithLogger(myLogger))
//	mon.SetOnTimeout(func() { conn.Reconnect() })
//	err := mon.Start(pulse.DefaultKeepAlive(), conn)
func NewMonitor(opts ...Option) *Monitor {
	options := &monitorOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNop()
	}

	return &Monitor{
		logger:      loggerInstance,
		metrics:     metricsCollector,
		nowFunc:     time.Now,
		subscribers: xsync.NewMap[uint64, *healthSubscriber](),
	}
}

// Start begins periodic health checks of conn using the supplied timings.
//
// The first check runs one full CheckInterval after Start returns, not
// immediately. If a schedule is already active it is fully stopped before
// the new one begins, so at most one schedule is ever live. Starting resets
// any warning or timeout episode from a previous run.
//
// A keepAlive that has not yet observed activity starts its clock at the
// time of this call; one that has already tracked activity keeps its clock.
//
// Parameters:
//   - keepAlive: Timing thresholds and the shared last-activity clock
//   - conn: Connection whose state gates threshold evaluation
//
// Returns:
//   - error: ErrKeepAliveRequired, ErrConnectionRequired, or a validation
//     error describing unusable timings. No state changes on error.
func (m *Monitor) Start(keepAlive *KeepAlive, conn types.Connection) error {
	if keepAlive == nil {
		return ErrKeepAliveRequired
	}
	if conn == nil {
		return ErrConnectionRequired
	}
	if err := keepAlive.Validate(); err != nil {
		return fmt.Errorf("invalid keep-alive: %w", err)
	}

	m.mu.Lock()
	m.stopScheduleLocked()

	before := m.healthLocked()
	if keepAlive.lastActivity.IsZero() {
		keepAlive.lastActivity = m.nowFunc()
	}
	m.keepAlive = keepAlive
	m.warned = false
	m.timedOut = false
	m.running = true
	m.gen++
	gen := m.gen

	ticker := time.NewTicker(keepAlive.CheckInterval)
	stopCh := make(chan struct{})
	m.ticker = ticker
	m.stopCh = stopCh

	go m.run(conn, ticker, stopCh, gen)
	m.mu.Unlock()

	if before != types.HealthHealthy {
		m.publishHealth(types.HealthHealthy)
	}
	m.metrics.SetHealth(types.HealthHealthy)
	m.logger.Info("monitor started",
		"check_interval", keepAlive.CheckInterval,
		"warning_threshold", keepAlive.WarningThreshold,
		"timeout_threshold", keepAlive.TimeoutThreshold)

	return nil
}

// Stop halts the active schedule.
//
// Stop never fails and is safe to call at any time, from any goroutine,
// any number of times, including from a warning or timeout callback. A
// check tick already in flight observes the stop and performs no further
// side effects. Keep-alive data, callbacks, and the current health verdict
// survive Stop so they can be inspected afterwards.
func (m *Monitor) Stop() {
	m.mu.Lock()
	wasRunning := m.running
	m.stopScheduleLocked()
	m.mu.Unlock()

	if wasRunning {
		m.logger.Info("monitor stopped")
	}
}

// stopScheduleLocked halts the active schedule and invalidates in-flight
// ticks. Callers must hold mu.
func (m *Monitor) stopScheduleLocked() {
	if !m.running {
		return
	}
	m.running = false
	m.gen++
	m.ticker.Stop()
	close(m.stopCh)
	m.ticker = nil
	m.stopCh = nil
}

// Beat reports activity on the monitored connection, resetting the
// inactivity clock.
//
// Beat never fails: with no keep-alive data supplied yet it is a no-op.
// It is safe from any goroutine, whether or not the monitor is running.
func (m *Monitor) Beat() {
	m.mu.Lock()
	if m.keepAlive == nil {
		m.mu.Unlock()

		return
	}
	m.keepAlive.lastActivity = m.nowFunc()
	m.mu.Unlock()

	m.metrics.RecordBeat()
}

// run drives check ticks until the schedule is stopped.
func (m *Monitor) run(conn types.Connection, ticker *time.Ticker, stopCh chan struct{}, gen uint64) {
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			m.tick(conn, gen)
		}
	}
}

// tick performs one health check: it evaluates the inactivity span against
// the thresholds and commits at most one transition.
func (m *Monitor) tick(conn types.Connection, gen uint64) {
	m.mu.Lock()
	if !m.running || gen != m.gen {
		// Superseded by Stop or a newer Start while waiting for the lock.
		m.mu.Unlock()

		return
	}

	ka := m.keepAlive
	if ka == nil {
		// Keep-alive data was cleared mid-run; nothing to measure against.
		m.mu.Unlock()

		return
	}

	state := conn.State()
	if state != types.StateConnected {
		m.mu.Unlock()

		m.metrics.RecordTickSkipped(state)
		m.logger.Debug("check skipped, connection not connected", "conn_state", state.String())

		return
	}

	elapsed := m.nowFunc().Sub(ka.lastActivity)
	before := m.healthLocked()

	var notify func()
	var firedWarning, firedTimeout, recovered bool
	switch {
	case elapsed >= ka.TimeoutThreshold:
		if !m.timedOut {
			m.timedOut = true
			notify = m.onTimeout
			firedTimeout = true
		}
	case elapsed >= ka.WarningThreshold:
		if !m.warned {
			m.warned = true
			notify = m.onWarning
			firedWarning = true
		}
	default:
		recovered = m.warned || m.timedOut
		m.warned = false
		m.timedOut = false
	}
	after := m.healthLocked()
	m.mu.Unlock()

	m.metrics.RecordTick(after)

	switch {
	case firedTimeout:
		m.metrics.RecordTimeout(elapsed.Seconds())
		m.logger.Error("connection timed out", "elapsed", elapsed)
	case firedWarning:
		m.metrics.RecordWarning(elapsed.Seconds())
		m.logger.Warn("connection inactivity warning", "elapsed", elapsed)
	case recovered:
		m.metrics.RecordRecovery()
		m.logger.Info("connection activity resumed", "elapsed", elapsed)
	}

	if after != before {
		m.publishHealth(after)
		m.metrics.SetHealth(after)
	}

	// Invoked after releasing the lock so the callback may safely call
	// Stop, Beat, or Start on this monitor.
	if notify != nil {
		notify()
	}
}

// Subscribe returns a channel that receives health change notifications.
//
// The returned channel is buffered (size 4) to allow rapid transitions
// without blocking the check tick. The subscriber receives the current
// health immediately upon subscription. Updates that cannot be delivered to
// a full channel are dropped; the subscriber sees the next change instead.
//
// Subscriptions survive Stop and Start. The unsubscribe function closes the
// channel and releases the subscription.
//
// Returns:
//   - <-chan types.Health: Channel receiving health updates
//   - func(): Unsubscribe function to clean up resources
//
// Example:
//
//	ch, unsubscribe := mon.Subscribe()
//	defer unsubscribe()
//	for health := range ch {
//	    fmt.Printf("connection is now %s\n", health)
//	}
func (m *Monitor) Subscribe() (<-chan types.Health, func()) {
	id := m.nextSubID.Add(1)

	sub := &healthSubscriber{ch: make(chan types.Health, 4)}
	m.subscribers.Store(id, sub)

	// Immediately send the current health
	sub.trySend(m.Health(), m.metrics)

	unsubscribe := func() {
		m.removeSubscriber(id)
	}

	return sub.ch, unsubscribe
}

// removeSubscriber removes a subscriber and closes its channel.
func (m *Monitor) removeSubscriber(id uint64) {
	if sub, ok := m.subscribers.LoadAndDelete(id); ok {
		sub.close()
	}
}

// publishHealth notifies all subscribers of a health transition.
func (m *Monitor) publishHealth(health types.Health) {
	m.subscribers.Range(func(_ uint64, sub *healthSubscriber) bool {
		sub.trySend(health, m.metrics)

		return true
	})
}

// IsRunning reports whether a schedule is currently active.
func (m *Monitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.running
}

// Health returns the monitor's current verdict on connection liveness.
//
// The verdict persists across Stop; a fresh monitor reports HealthHealthy.
func (m *Monitor) Health() types.Health {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.healthLocked()
}

// healthLocked derives the health verdict from the episode flags.
// Callers must hold mu.
func (m *Monitor) healthLocked() types.Health {
	switch {
	case m.timedOut:
		return types.HealthTimedOut
	case m.warned:
		return types.HealthWarned
	default:
		return types.HealthHealthy
	}
}

// LastActivity returns the time activity was last observed, or the zero
// time when no keep-alive data has been supplied yet.
func (m *Monitor) LastActivity() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.keepAlive == nil {
		return time.Time{}
	}

	return m.keepAlive.lastActivity
}

// OnWarning returns the registered warning callback, nil when unset.
func (m *Monitor) OnWarning() func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.onWarning
}

// SetOnWarning registers fn to run when inactivity reaches the warning
// threshold. It fires at most once per episode and runs outside the
// monitor's lock. A nil fn disables the notification.
func (m *Monitor) SetOnWarning(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onWarning = fn
}

// OnTimeout returns the registered timeout callback, nil when unset.
func (m *Monitor) OnTimeout() func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.onTimeout
}

// SetOnTimeout registers fn to run when inactivity reaches the timeout
// threshold. It fires at most once per episode and runs outside the
// monitor's lock. A nil fn disables the notification.
func (m *Monitor) SetOnTimeout(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onTimeout = fn
}

// KeepAlive returns the keep-alive data the monitor is tracking, nil when
// none has been supplied. The returned value is shared with the monitor;
// do not mutate its thresholds while a schedule is active.
func (m *Monitor) KeepAlive() *KeepAlive {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.keepAlive
}

// SetKeepAlive replaces the keep-alive data without rescheduling.
//
// Outside a running schedule this simply swaps the tracked data; Beat then
// advances the new clock. While a schedule is active the next tick reads the
// new thresholds, but the check interval remains the one the schedule was
// started with. Restart the monitor to apply a new interval.
func (m *Monitor) SetKeepAlive(keepAlive *KeepAlive) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keepAlive = keepAlive
}
