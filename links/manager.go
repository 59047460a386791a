// Package links is the routing core: it owns the channel-link table and
// the message-identity correlation table, fans inbound messages out to
// linked channels, and propagates delete cascades.
package links

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chatmux/contract"
	"chatmux/domain"
	"chatmux/domain/event"
	"chatmux/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Store persists link-table changes so links survive restarts.
type Store interface {
	SaveLink(link domain.ChannelLink) error
	DeleteLink(a, b domain.ChannelRef) error
	LoadLinks() ([]domain.ChannelLink, error)
}

// Overseer takes over a relayed message after a successful send. The
// moderation coordinator implements this; it decides itself whether the
// target channel is under moderation.
type Overseer interface {
	Oversee(ctx context.Context, source contract.Source, target domain.ChannelRef, handle contract.MessageHandle, origin domain.ChatMessage)
}

// Translator rewrites content for a destination directory.
type Translator func(ctx context.Context, content string, dir contract.Directory) (string, error)

type correlationEntry struct {
	target   domain.ChannelRef
	handle   contract.MessageHandle
	terminal bool
}

type correlationRecord struct {
	origin    domain.ChatMessage
	entries   []*correlationEntry
	createdAt time.Time
}

// Manager owns the link and correlation tables. All mutations are atomic
// with respect to concurrent routing; a correlation entry becomes visible
// only after its send fully completed.
type Manager struct {
	log        *slog.Logger
	registry   contract.IServiceRegistry
	translator Translator
	store      Store
	overseer   Overseer
	events     chan<- event.DomainEvent
	retention  time.Duration

	mu           sync.Mutex
	links        []domain.ChannelLink
	correlations map[uuid.UUID]*correlationRecord

	dispatchMu sync.Mutex
	dispatch   map[domain.ChannelRef]chan relayJob
	runCtx     context.Context
	wg         sync.WaitGroup
}

var _ contract.ILinkManager = (*Manager)(nil)
var _ contract.Worker = (*Manager)(nil)

func NewManager(log *slog.Logger, registry contract.IServiceRegistry,
	translator Translator, store Store,
	events chan<- event.DomainEvent, retention time.Duration) *Manager {
	return &Manager{
		log:          log,
		registry:     registry,
		translator:   translator,
		store:        store,
		events:       events,
		retention:    retention,
		correlations: make(map[uuid.UUID]*correlationRecord),
		dispatch:     make(map[domain.ChannelRef]chan relayJob),
	}
}

// SetOverseer wires the moderation coordinator in. Called once during
// startup, before any routing happens.
func (m *Manager) SetOverseer(o Overseer) { m.overseer = o }

// Restore loads the persisted link table. Called once at startup.
func (m *Manager) Restore() error {
	if m.store == nil {
		return nil
	}
	stored, err := m.store.LoadLinks()
	if err != nil {
		return fmt.Errorf("restoring link table: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = stored
	return nil
}

// AddLink inserts a symmetric association between two channels. Both
// services must be registered; self-links and duplicates are rejected.
func (m *Manager) AddLink(a, b domain.ChannelRef, raw bool) error {
	if a == b {
		return errors.ErrSelfLink
	}
	for _, ref := range []domain.ChannelRef{a, b} {
		if _, ok := m.registry.ByName(ref.Service); !ok {
			return fmt.Errorf("%w: %q", errors.ErrUnknownService, ref.Service)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.links {
		if l.Matches(a, b) {
			return errors.ErrAlreadyLinked
		}
	}
	link := domain.ChannelLink{From: a, To: b, Raw: raw}
	if m.store != nil {
		if err := m.store.SaveLink(link); err != nil {
			return fmt.Errorf("persisting link: %w", err)
		}
	}
	m.links = append(m.links, link)
	m.emit(event.LinkAdded{Link: link, At: time.Now()})
	return nil
}

// RemoveLink tears down the association between two channels, in either
// order.
func (m *Manager) RemoveLink(a, b domain.ChannelRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.links {
		if !l.Matches(a, b) {
			continue
		}
		if m.store != nil {
			if err := m.store.DeleteLink(l.From, l.To); err != nil {
				return fmt.Errorf("removing link: %w", err)
			}
		}
		m.links = append(m.links[:i], m.links[i+1:]...)
		m.emit(event.LinkRemoved{Link: l, At: time.Now()})
		return nil
	}
	return errors.ErrLinkNotFound
}

// Links returns a snapshot of the link table.
func (m *Manager) Links() []domain.ChannelLink {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ChannelLink(nil), m.links...)
}

// targetsOf resolves the channels linked to an origin. Each target
// carries the raw flag of its link.
func (m *Manager) targetsOf(origin domain.ChannelRef) []relayTarget {
	m.mu.Lock()
	defer m.mu.Unlock()
	var targets []relayTarget
	for _, l := range m.links {
		switch origin {
		case l.From:
			targets = append(targets, relayTarget{ref: l.To, raw: l.Raw})
		case l.To:
			targets = append(targets, relayTarget{ref: l.From, raw: l.Raw})
		}
	}
	return targets
}

// Route fans one origin message out to every linked channel. Sends to
// different targets are independent; per-target delivery order follows
// the order Route observed messages in.
func (m *Manager) Route(ctx context.Context, origin domain.ChatMessage) {
	targets := m.targetsOf(origin.Origin())
	if len(targets) == 0 {
		return
	}
	for _, t := range targets {
		m.enqueue(ctx, t, origin)
	}
}

// CascadeDelete removes every relayed copy of an origin message and
// drops the correlation record.
func (m *Manager) CascadeDelete(ctx context.Context, origin domain.ChatMessage) error {
	m.mu.Lock()
	record, ok := m.correlations[origin.ID]
	if ok {
		delete(m.correlations, origin.ID)
	}
	m.mu.Unlock()
	if !ok {
		return nil
	}

	deleted := 0
	for _, entry := range record.entries {
		if err := entry.handle.Delete(ctx); err != nil {
			m.log.Warn("Failed to delete relayed copy",
				"target", entry.target.String(), "error", err)
			continue
		}
		deleted++
	}
	m.emit(event.CascadeDeleted{
		OriginID: origin.ID,
		From:     origin.Origin(),
		Copies:   deleted,
		At:       time.Now(),
	})
	return nil
}

// recordCorrelation appends one relayed copy to the origin's record. The
// entry only becomes visible here, after the send fully completed.
func (m *Manager) recordCorrelation(origin domain.ChatMessage, target domain.ChannelRef, handle contract.MessageHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.correlations[origin.ID]
	if !ok {
		record = &correlationRecord{origin: origin, createdAt: time.Now()}
		m.correlations[origin.ID] = record
	}
	record.entries = append(record.entries, &correlationEntry{target: target, handle: handle})
}

// MarkTerminal notes that one target reached its terminal moderation
// state. Once every target is terminal the record is dropped.
func (m *Manager) MarkTerminal(originID uuid.UUID, target domain.ChannelRef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.correlations[originID]
	if !ok {
		return
	}
	allDone := true
	for _, entry := range record.entries {
		if entry.target == target {
			entry.terminal = true
		}
		allDone = allDone && entry.terminal
	}
	if allDone {
		delete(m.correlations, originID)
	}
}

// CorrelatedCopies reports the relayed message ids currently recorded
// for an origin.
func (m *Manager) CorrelatedCopies(originID uuid.UUID) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.correlations[originID]
	if !ok {
		return nil
	}
	return lo.Map(record.entries, func(e *correlationEntry, _ int) string {
		return e.handle.ID()
	})
}

// pruneExpired enforces the bounded retention ceiling on correlation
// records so the table cannot grow without bound.
func (m *Manager) pruneExpired(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, record := range m.correlations {
		if now.Sub(record.createdAt) > m.retention {
			delete(m.correlations, id)
		}
	}
}

func (m *Manager) emit(e event.DomainEvent) {
	if m.events == nil {
		return
	}
	select {
	case m.events <- e:
	default:
		m.log.Debug("Event channel full, telemetry event lost")
	}
}
