// Package moderation contains the per-message vote coordinator and the
// profanity censor applied to relayed content.
package moderation

import (
	"context"
	"log/slog"
	"time"

	"chatmux/contract"
	"chatmux/domain"
	"chatmux/domain/event"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// FlagMarker is the reaction attached to a relayed message to open the
// moderation vote.
const FlagMarker = "❌"

// Clock abstracts the vote window timer so tests control time.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock is the wall clock used outside tests.
func SystemClock() Clock { return systemClock{} }

// Policy is the externally loaded moderation configuration.
type Policy struct {
	Moderators []string
	Admins     []string
	// Channels maps a service name to its moderation-enabled channel ids.
	Channels map[string][]string
	Window   time.Duration
}

// Moderated reports whether a relayed copy landing on this channel must
// go through the vote. Without any configured moderator or admin there
// is nobody to vote, so nothing is flagged.
func (p Policy) Moderated(ref domain.ChannelRef) bool {
	if len(p.Moderators) == 0 && len(p.Admins) == 0 {
		return false
	}
	return lo.Contains(p.Channels[ref.Service], ref.ChannelID)
}

// Cascader is the slice of the link manager the coordinator needs.
type Cascader interface {
	CascadeDelete(ctx context.Context, origin domain.ChatMessage) error
	MarkTerminal(originID uuid.UUID, target domain.ChannelRef)
}

// Coordinator runs one independent vote per relayed message:
// Posted -> Flagged -> {ResolvedDeleted, ResolvedTimeout}. Many votes run
// concurrently; the only shared state is the correlation table, touched
// through the Cascader.
type Coordinator struct {
	log    *slog.Logger
	policy Policy
	links  Cascader
	clock  Clock
	events chan<- event.DomainEvent
}

func NewCoordinator(log *slog.Logger, policy Policy, links Cascader,
	clock Clock, events chan<- event.DomainEvent) *Coordinator {
	if clock == nil {
		clock = SystemClock()
	}
	return &Coordinator{log: log, policy: policy, links: links, clock: clock, events: events}
}

// Oversee takes over a freshly relayed message. It returns when the vote
// reaches a terminal state; callers run it on its own goroutine.
func (c *Coordinator) Oversee(ctx context.Context, source contract.Source,
	target domain.ChannelRef, handle contract.MessageHandle, origin domain.ChatMessage) {
	if !c.policy.Moderated(target) {
		c.links.MarkTerminal(origin.ID, target)
		return
	}

	if err := handle.React(ctx, FlagMarker); err != nil {
		c.log.Warn("Failed to flag relayed message", "target", target.String(), "error", err)
		c.links.MarkTerminal(origin.ID, target)
		return
	}

	reactions, stop, err := source.WatchReactions(ctx, target.ChannelID, handle.ID())
	if err != nil {
		c.log.Warn("Failed to watch reactions", "target", target.String(), "error", err)
		_ = handle.Unreact(ctx, FlagMarker)
		c.links.MarkTerminal(origin.ID, target)
		return
	}
	// Cancelling the subscription is what retires the losing branch: a
	// single select below picks exactly one winner, and stop makes sure
	// no reaction event dangles past that decision.
	defer stop()

	window := c.clock.After(c.policy.Window)
	for {
		select {
		case <-ctx.Done():
			return

		case r, ok := <-reactions:
			if !ok {
				// Subscription ended underneath us; leave the message be.
				c.resolveTimeout(ctx, handle, origin, target)
				return
			}
			if r.Marker != FlagMarker || r.MessageID != handle.ID() || r.UserID == source.Identity() {
				continue
			}
			c.resolveDeleted(ctx, handle, origin, target)
			return

		case <-window:
			c.resolveTimeout(ctx, handle, origin, target)
			return
		}
	}
}

// resolveDeleted is the vote-won path: the relayed copy goes away, and
// the deletion cascades back through the origin. The flag disappears
// with the message; no reaction cleanup runs afterwards.
func (c *Coordinator) resolveDeleted(ctx context.Context, handle contract.MessageHandle,
	origin domain.ChatMessage, target domain.ChannelRef) {
	if err := handle.Delete(ctx); err != nil {
		c.log.Warn("Failed to delete flagged message", "target", target.String(), "error", err)
	}
	if err := c.links.CascadeDelete(ctx, origin); err != nil {
		c.log.Warn("Cascade delete failed", "origin", origin.String(), "error", err)
	}
	if origin.Actions != nil {
		if err := origin.Actions.Delete(ctx); err != nil {
			c.log.Warn("Failed to delete origin message", "origin", origin.String(), "error", err)
		}
	}
	c.emit(event.ModerationResolved{
		OriginID:  origin.ID,
		Target:    target,
		RelayedID: handle.ID(),
		Deleted:   true,
		At:        time.Now(),
	})
}

// resolveTimeout is the window-elapsed path: the flag comes off and the
// message stays.
func (c *Coordinator) resolveTimeout(ctx context.Context, handle contract.MessageHandle,
	origin domain.ChatMessage, target domain.ChannelRef) {
	if err := handle.Unreact(ctx, FlagMarker); err != nil {
		c.log.Warn("Failed to remove flag reaction", "target", target.String(), "error", err)
	}
	c.links.MarkTerminal(origin.ID, target)
	c.emit(event.ModerationResolved{
		OriginID:  origin.ID,
		Target:    target,
		RelayedID: handle.ID(),
		Deleted:   false,
		At:        time.Now(),
	})
}

func (c *Coordinator) emit(e event.DomainEvent) {
	if c.events == nil {
		return
	}
	select {
	case c.events <- e:
	default:
		c.log.Debug("Event channel full, moderation event lost")
	}
}
