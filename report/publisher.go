package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/pulse"
	"github.com/arloliu/pulse/internal/kvutil"
	"github.com/arloliu/pulse/internal/logger"
	"github.com/arloliu/pulse/internal/metrics"
	"github.com/arloliu/pulse/internal/natsutil"
	"github.com/arloliu/pulse/types"
)

// Common errors for report operations.
var (
	ErrNotStarted      = errors.New("report publisher not started")
	ErrAlreadyStarted  = errors.New("report publisher already started")
	ErrKVRequired      = errors.New("KV bucket is required")
	ErrKeyRequired     = errors.New("report key is required")
	ErrMonitorRequired = errors.New("monitor is required")
)

// Write timeouts for the KV operations issued from the publish loop and
// from Stop, which both run detached from any caller context.
const (
	putTimeout    = 5 * time.Second
	deleteTimeout = 2 * time.Second
)

// Entry is the JSON document written to the KV bucket for each health
// transition.
type Entry struct {
	// Health is the monitor's verdict ("Healthy", "Warned", "TimedOut").
	Health string `json:"health"`

	// LastActivity is when the monitored connection last showed activity.
	LastActivity time.Time `json:"last_activity"`

	// ObservedAt is when this entry was written.
	ObservedAt time.Time `json:"observed_at"`
}

// Publisher mirrors a monitor's health transitions into a NATS KV bucket.
//
// External systems watch the bucket to observe connection health without
// talking to the process that owns the connection. The entry is deleted on
// Stop so stale health never outlives its publisher; an absent key means
// "nobody is reporting", not "healthy".
type Publisher struct {
	kv      jetstream.KeyValue
	key     string
	monitor *pulse.Monitor

	logger  types.Logger
	metrics types.MetricsCollector

	mu          sync.Mutex
	started     bool
	unsubscribe func()
	doneCh      chan struct{}
}

// New creates a new health report publisher.
//
// Parameters:
//   - kv: JetStream KV bucket for report storage
//   - key: KV key the report is written under (e.g., "conn-health.gateway")
//   - monitor: Monitor whose health transitions are mirrored
//
// Returns:
//   - *Publisher: New report publisher instance
//
// Example:
//
//	kv, _ := js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
//	    Bucket:  "conn-health",
//	    Storage: jetstream.FileStorage,
//	})
//	publisher := report.New(kv, "gateway", mon)
func New(kv jetstream.KeyValue, key string, monitor *pulse.Monitor) *Publisher {
	return &Publisher{
		kv:      kv,
		key:     key,
		monitor: monitor,
		logger:  logger.NewNop(),
		metrics: metrics.NewNop(),
	}
}

// EnsureBucket creates or opens the KV bucket reports are written to.
//
// Several processes reporting into the same bucket race to create it; the
// race and transient failures are retried internally. History is capped at
// the latest value since only the current health matters.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - bucket: Name of the KV bucket
//   - ttl: Entry TTL, 0 for no expiry
//
// Returns:
//   - jetstream.KeyValue: The KV bucket instance
//   - error: Creation error after retries are exhausted
//
// Example:
//
//	kv, err := report.EnsureBucket(ctx, js, "conn-health", time.Minute)
//	if err != nil {
//	    return err
//	}
//	publisher := report.New(kv, "gateway", mon)
func EnsureBucket(ctx context.Context, js jetstream.JetStream, bucket string, ttl time.Duration) (jetstream.KeyValue, error) {
	cfg := jetstream.KeyValueConfig{
		Bucket:  bucket,
		History: 1, // Keep only latest value
	}

	if ttl > 0 {
		cfg.TTL = ttl
	}

	const maxRetries = 5
	kv, err := kvutil.EnsureKVBucketWithRetry(ctx, js, cfg, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to create/open KV bucket %s: %w", bucket, err)
	}

	return kv, nil
}

// SetLogger sets the logger for publish failures.
//
// Optional, must be called before Start(). If not set, failures are not logged.
func (p *Publisher) SetLogger(l types.Logger) {
	if l == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.logger = l
}

// SetMetrics sets the metrics collector for report write events.
//
// Optional, must be called before Start(). If not set, metrics are not recorded.
func (p *Publisher) SetMetrics(m types.MetricsCollector) {
	if m == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.metrics = m
}

// Start begins mirroring health transitions in the background.
//
// Writes the current health immediately, then an entry per transition.
// Continues until Stop() is called. The publisher may be started again
// after a Stop.
//
// Parameters:
//   - ctx: Context for the initial write
//
// Returns:
//   - error: ErrAlreadyStarted if running, a wiring sentinel if the
//     publisher was built without its bucket, key, or monitor, or the
//     initial write error
func (p *Publisher) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrAlreadyStarted
	}
	if p.kv == nil {
		return ErrKVRequired
	}
	if p.key == "" {
		return ErrKeyRequired
	}
	if p.monitor == nil {
		return ErrMonitorRequired
	}

	ch, unsubscribe := p.monitor.Subscribe()

	// The subscription delivers the current health up front; write it
	// synchronously so a broken bucket fails Start instead of the loop.
	initial := <-ch
	if err := p.publish(ctx, initial); err != nil {
		unsubscribe()

		return fmt.Errorf("failed to write initial health report: %w", err)
	}
	p.metrics.RecordReportWrite(true)

	p.started = true
	p.unsubscribe = unsubscribe
	p.doneCh = make(chan struct{})

	go p.publishLoop(ch, p.doneCh, p.logger, p.metrics)

	return nil
}

// Stop stops the publisher and deletes the report entry from KV.
//
// Blocks until the publish goroutine exits and cleanup completes. The entry
// is deleted to immediately signal that health is no longer being reported.
//
// Returns:
//   - error: ErrNotStarted if not running, or cleanup error if delete fails
func (p *Publisher) Stop() error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()

		return ErrNotStarted
	}

	p.started = false
	unsubscribe := p.unsubscribe
	doneCh := p.doneCh
	p.unsubscribe = nil
	p.doneCh = nil
	p.mu.Unlock()

	// Ending the subscription closes the channel and drains the loop.
	unsubscribe()
	<-doneCh

	ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
	defer cancel()

	if err := p.kv.Delete(ctx, p.key); err != nil {
		// Don't fail on cleanup errors, but return them for logging
		return fmt.Errorf("stopped but failed to delete health report: %w", err)
	}

	return nil
}

// publishLoop writes an entry for every health transition until the
// subscription is closed. The logger and metrics collector are captured at
// Start so the loop never races a setter.
func (p *Publisher) publishLoop(ch <-chan types.Health, doneCh chan struct{}, log types.Logger, mc types.MetricsCollector) {
	defer close(doneCh)

	for health := range ch {
		// Fresh timeout per write since this goroutine outlives any caller context.
		ctx, cancel := context.WithTimeout(context.Background(), putTimeout)
		err := p.publish(ctx, health)
		cancel()

		if err != nil {
			mc.RecordReportWrite(false)
			// A transport outage already shows up in the monitored health;
			// don't raise a second alarm for the report write itself.
			if natsutil.IsConnectivityError(err) {
				log.Warn("health report write skipped, NATS unavailable",
					"key", p.key,
					"health", health.String(),
					"error", err)
			} else {
				log.Error("failed to write health report",
					"key", p.key,
					"health", health.String(),
					"error", err)
			}
		} else {
			mc.RecordReportWrite(true)
		}
	}
}

// publish writes one health entry to NATS KV.
func (p *Publisher) publish(ctx context.Context, health types.Health) error {
	entry := Entry{
		Health:       health.String(),
		LastActivity: p.monitor.LastActivity(),
		ObservedAt:   time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode health report: %w", err)
	}

	if _, err := p.kv.Put(ctx, p.key, data); err != nil {
		return fmt.Errorf("failed to write health report %s: %w", p.key, err)
	}

	return nil
}

// Key returns the KV key the report is written under.
func (p *Publisher) Key() string {
	return p.key
}

// IsStarted returns whether the publisher is currently running.
func (p *Publisher) IsStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.started
}
