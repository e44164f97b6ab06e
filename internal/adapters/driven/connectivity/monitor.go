// Package connectivity provides a probe-based reachability monitor.
//
// Reachability is observed, never assumed: the monitor periodically calls
// the API's health endpoint and publishes transitions. Consumers treat the
// result as advisory, since a link that answered a probe can drop before
// the next real request.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/opengrama/gramasurvey/internal/core/ports/driven"
	"github.com/opengrama/gramasurvey/internal/logger"
)

// Ensure Monitor implements the interface.
var _ driven.ConnectivityMonitor = (*Monitor)(nil)

// DefaultInterval is the default probe period.
const DefaultInterval = 30 * time.Second

// Monitor probes the household API's health endpoint on a fixed interval
// and reports transitions.
type Monitor struct {
	remote   driven.HouseholdService
	interval time.Duration

	mu     sync.RWMutex
	online bool

	events chan bool
}

// NewMonitor creates a monitor probing via the given remote. An interval of
// zero uses DefaultInterval. The monitor starts pessimistic: offline until
// the first probe succeeds.
func NewMonitor(remote driven.HouseholdService, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		remote:   remote,
		interval: interval,
		events:   make(chan bool, 1),
	}
}

// Online returns the last observed reachability.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Events returns the transition channel. It is closed when Start returns.
func (m *Monitor) Events() <-chan bool {
	return m.events
}

// Start probes immediately and then on every interval tick, until ctx is
// cancelled.
func (m *Monitor) Start(ctx context.Context) {
	defer close(m.events)

	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

// probe performs one health check and publishes a transition if
// reachability changed.
func (m *Monitor) probe(ctx context.Context) {
	err := m.remote.Health(ctx)
	online := err == nil

	m.mu.Lock()
	changed := online != m.online
	m.online = online
	m.mu.Unlock()

	if !changed {
		return
	}
	if online {
		logger.Info("server reachable")
	} else {
		logger.Info("server unreachable: %v", err)
	}

	// Drop the event rather than block if nobody is listening.
	select {
	case m.events <- online:
	default:
	}
}
