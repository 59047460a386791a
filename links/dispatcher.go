package links

import (
	"context"
	"time"

	"chatmux/domain"
	"chatmux/domain/event"

	"github.com/abadojack/whatlanggo"
)

type relayTarget struct {
	ref domain.ChannelRef
	raw bool
}

type relayJob struct {
	target relayTarget
	origin domain.ChatMessage
}

// queueCapacity bounds the per-destination backlog. A platform that
// cannot keep up sheds load instead of stalling unrelated destinations.
const queueCapacity = 256

// Run makes the manager a supervised worker: it anchors the lifetime of
// the per-destination dispatch queues and prunes expired correlation
// records until the context ends.
func (m *Manager) Run(ctx context.Context) error {
	m.dispatchMu.Lock()
	m.runCtx = ctx
	m.dispatchMu.Unlock()

	interval := m.retention / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Debug("Stopping link manager")
			m.wg.Wait()
			return nil
		case now := <-ticker.C:
			m.pruneExpired(now)
		}
	}
}

// enqueue hands a job to the target's serialized queue, creating the
// queue worker on first use. One goroutine per destination preserves
// per-destination delivery order while destinations stay independent.
func (m *Manager) enqueue(ctx context.Context, target relayTarget, origin domain.ChatMessage) {
	m.dispatchMu.Lock()
	queue, ok := m.dispatch[target.ref]
	if !ok {
		queue = make(chan relayJob, queueCapacity)
		m.dispatch[target.ref] = queue
		lifecycle := m.runCtx
		if lifecycle == nil {
			lifecycle = ctx
		}
		m.wg.Add(1)
		go m.drainQueue(lifecycle, target.ref, queue)
	}
	m.dispatchMu.Unlock()

	select {
	case queue <- relayJob{target: target, origin: origin}:
	default:
		m.log.Warn("Destination queue full, dropping relay",
			"target", target.ref.String(), "messageID", origin.ID)
		m.failed(origin, target.ref, "destination queue full")
	}
}

func (m *Manager) drainQueue(ctx context.Context, ref domain.ChannelRef, queue chan relayJob) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-queue:
			m.deliver(ctx, job)
		}
	}
}

// deliver performs one relay send. A failure here is isolated to this
// destination; other queues never notice.
func (m *Manager) deliver(ctx context.Context, job relayJob) {
	origin := job.origin
	target := job.target.ref

	source, ok := m.registry.ByName(target.Service)
	if !ok {
		m.log.Error("Linked target references unregistered service", "target", target.String())
		m.failed(origin, target, "service not registered")
		return
	}

	raw := job.target.raw || origin.Service == target.Service
	outbound := origin
	if !raw {
		translated, err := m.translator(ctx, origin.Content, source.Directory(target.ChannelID))
		if err != nil {
			// Unresolved tokens relay verbatim; the message is never dropped.
			m.log.Warn("Translation degraded", "target", target.String(), "error", err)
		}
		outbound.Content = translated
	}

	handle, err := source.Send(ctx, target.ChannelID, outbound, raw)
	if err != nil {
		m.log.Warn("Relay send failed", "target", target.String(), "error", err)
		m.failed(origin, target, err.Error())
		return
	}

	m.recordCorrelation(origin, target, handle)

	info := whatlanggo.Detect(origin.Content)
	m.emit(event.MessageRelayed{
		OriginID:  origin.ID,
		From:      origin.Origin(),
		Target:    target,
		RelayedID: handle.ID(),
		User:      origin.User,
		Content:   outbound.Content,
		Lang:      info.Lang.Iso6391(),
		At:        time.Now(),
	})

	if m.overseer != nil {
		// The moderation race must not hold up this destination's queue.
		go m.overseer.Oversee(ctx, source, target, handle, origin)
	}
}

func (m *Manager) failed(origin domain.ChatMessage, target domain.ChannelRef, reason string) {
	m.emit(event.RelayFailed{
		OriginID: origin.ID,
		From:     origin.Origin(),
		Target:   target,
		Reason:   reason,
		At:       time.Now(),
	})
}
