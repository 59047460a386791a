// Package observability aggregates relay telemetry for logs and the
// debug page. Counters are atomic; nothing here sits on the hot path.
package observability

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"chatmux/domain/event"
)

// RelayStats is a point-in-time snapshot for the debug page.
type RelayStats struct {
	Received       uint64  `json:"received"`
	Relayed        uint64  `json:"relayed"`
	Failed         uint64  `json:"failed"`
	CascadeDeletes uint64  `json:"cascade_deletes"`
	VotesDeleted   uint64  `json:"votes_deleted"`
	VotesTimedOut  uint64  `json:"votes_timed_out"`
	RelayRate      float64 `json:"relay_rate"` // messages per second
	AllocMemMb     uint64  `json:"alloc_mem_mb"`
	NumGC          uint32  `json:"num_gc"`
}

// Monitor keeps relay counters and periodically folds them into a
// snapshot.
type Monitor struct {
	log *slog.Logger

	received       atomic.Uint64
	relayed        atomic.Uint64
	failed         atomic.Uint64
	cascadeDeletes atomic.Uint64
	votesDeleted   atomic.Uint64
	votesTimedOut  atomic.Uint64
	windowRelayed  atomic.Uint64

	mu        sync.RWMutex
	latest    RelayStats
	lastCheck time.Time
}

func NewMonitor(log *slog.Logger) *Monitor {
	return &Monitor{log: log, lastCheck: time.Now()}
}

// Consume lets the monitor sit on the event fanout as a sink.
func (m *Monitor) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageReceived:
		m.received.Add(1)
	case event.MessageRelayed:
		m.relayed.Add(1)
		m.windowRelayed.Add(1)
	case event.RelayFailed:
		m.failed.Add(1)
	case event.CascadeDeleted:
		m.cascadeDeletes.Add(1)
	case event.ModerationResolved:
		if evt.Deleted {
			m.votesDeleted.Add(1)
		} else {
			m.votesTimedOut.Add(1)
		}
	}
	return nil
}

// Listen refreshes the snapshot every interval until the context ends.
func (m *Monitor) Listen(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Debug("Monitor stopped")
			return
		case <-ticker.C:
			m.updateStats()
		}
	}
}

func (m *Monitor) updateStats() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	duration := now.Sub(m.lastCheck).Seconds()
	if duration > 0 {
		window := m.windowRelayed.Swap(0)
		m.latest.RelayRate = float64(window) / duration
	}
	m.lastCheck = now

	m.latest.Received = m.received.Load()
	m.latest.Relayed = m.relayed.Load()
	m.latest.Failed = m.failed.Load()
	m.latest.CascadeDeletes = m.cascadeDeletes.Load()
	m.latest.VotesDeleted = m.votesDeleted.Load()
	m.latest.VotesTimedOut = m.votesTimedOut.Load()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.latest.AllocMemMb = ms.Alloc / 1024 / 1024
	m.latest.NumGC = ms.NumGC
}

// GetLatest returns the most recent snapshot.
func (m *Monitor) GetLatest() RelayStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}
