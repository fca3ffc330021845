package pulse

import (
	"sync"

	"github.com/arloliu/pulse/types"
)

// healthSubscriber is a helper for managing health change subscriptions.
type healthSubscriber struct {
	ch     chan types.Health
	mu     sync.Mutex
	closed bool
}

// trySend sends a health update to the subscriber's channel without blocking.
func (s *healthSubscriber) trySend(health types.Health, collector types.MetricsCollector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.ch <- health:
	default:
		// Subscriber is slow or not ready; they will get the next update.
		collector.RecordHealthChangeDropped()
	}
}

// close safely closes the subscriber's channel.
func (s *healthSubscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
