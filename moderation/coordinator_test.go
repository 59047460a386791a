package moderation

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"chatmux/domain"
	"chatmux/domain/event"
	"chatmux/services/memory"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// manualClock hands the window timer to the test.
type manualClock struct {
	ch chan time.Time
}

func newManualClock() *manualClock {
	return &manualClock{ch: make(chan time.Time)}
}

func (c *manualClock) After(time.Duration) <-chan time.Time { return c.ch }

func (c *manualClock) expire() { c.ch <- time.Now() }

// fakeCascader records the terminal transitions the coordinator drives.
type fakeCascader struct {
	mu        sync.Mutex
	cascaded  []uuid.UUID
	terminals []domain.ChannelRef
}

func (f *fakeCascader) CascadeDelete(_ context.Context, origin domain.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cascaded = append(f.cascaded, origin.ID)
	return nil
}

func (f *fakeCascader) MarkTerminal(_ uuid.UUID, target domain.ChannelRef) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terminals = append(f.terminals, target)
}

func (f *fakeCascader) cascades() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cascaded)
}

func (f *fakeCascader) terminalCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.terminals)
}

var townSquare = domain.ChannelRef{Service: "beta", ChannelID: "town-square"}

func moderatedPolicy() Policy {
	return Policy{
		Moderators: []string{"mod"},
		Channels:   map[string][]string{"beta": {"town-square"}},
		Window:     5 * time.Second,
	}
}

func overseeFixture(t *testing.T) (*memory.Service, *memory.Service, domain.ChatMessage) {
	t.Helper()
	req := require.New(t)

	alpha := memory.NewService("alpha", "relay")
	alpha.AddChannel("general", "general")
	origin, err := alpha.Post("general", "abe", "contested claim")
	req.NoError(err)

	beta := memory.NewService("beta", "relay")
	beta.AddChannel("town-square", "town-square")

	return alpha, beta, origin
}

func TestOversee_ModeratorVoteDeletesEverywhere(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	clock := newManualClock()
	cascader := &fakeCascader{}
	events := make(chan event.DomainEvent, 4)

	alpha, beta, origin := overseeFixture(t)
	handle, err := beta.Send(context.Background(), "town-square", origin, false)
	req.NoError(err)

	coordinator := NewCoordinator(log, moderatedPolicy(), cascader, clock, events)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		coordinator.Oversee(ctx, beta, townSquare, handle, origin)
		close(done)
	}()

	// The vote opens with the flag reaction.
	req.Eventually(func() bool {
		markers := beta.ReactionMarkers("town-square", handle.ID())
		return len(markers) == 1 && markers[0] == FlagMarker
	}, time.Second, 10*time.Millisecond)

	// A moderator seconds the flag before the window closes.
	beta.React("town-square", handle.ID(), "mod", FlagMarker)

	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("Vote did not resolve")
	}

	req.False(beta.HasMessage("town-square", handle.ID()))
	req.Equal(1, cascader.cascades())
	// The origin platform message went away through its Actions.
	req.Empty(alpha.Messages("general"))

	e := <-events
	resolved, ok := e.(event.ModerationResolved)
	req.True(ok)
	req.True(resolved.Deleted)
	req.Equal(origin.ID, resolved.OriginID)
}

func TestOversee_WindowExpiryKeepsMessage(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	clock := newManualClock()
	cascader := &fakeCascader{}
	events := make(chan event.DomainEvent, 4)

	_, beta, origin := overseeFixture(t)
	handle, err := beta.Send(context.Background(), "town-square", origin, false)
	req.NoError(err)

	coordinator := NewCoordinator(log, moderatedPolicy(), cascader, clock, events)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		coordinator.Oversee(ctx, beta, townSquare, handle, origin)
		close(done)
	}()

	req.Eventually(func() bool {
		return len(beta.ReactionMarkers("town-square", handle.ID())) == 1
	}, time.Second, 10*time.Millisecond)

	clock.expire()

	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("Vote did not resolve")
	}

	// The message survives and the flag is gone.
	req.True(beta.HasMessage("town-square", handle.ID()))
	req.Empty(beta.ReactionMarkers("town-square", handle.ID()))
	req.Equal(0, cascader.cascades())
	req.Equal(1, cascader.terminalCount())

	e := <-events
	resolved, ok := e.(event.ModerationResolved)
	req.True(ok)
	req.False(resolved.Deleted)
}

func TestOversee_OwnFlagDoesNotCountAsVote(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	clock := newManualClock()
	cascader := &fakeCascader{}

	_, beta, origin := overseeFixture(t)
	handle, err := beta.Send(context.Background(), "town-square", origin, false)
	req.NoError(err)

	coordinator := NewCoordinator(log, moderatedPolicy(), cascader, clock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		coordinator.Oversee(ctx, beta, townSquare, handle, origin)
		close(done)
	}()

	req.Eventually(func() bool {
		return len(beta.ReactionMarkers("town-square", handle.ID())) == 1
	}, time.Second, 10*time.Millisecond)

	// The relay's own flag arrives as a reaction event and must not win
	// the vote.
	beta.React("town-square", handle.ID(), "relay", FlagMarker)
	// An unrelated marker does not count either.
	beta.React("town-square", handle.ID(), "mod", "👍")

	clock.expire()
	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("Vote did not resolve")
	}

	req.True(beta.HasMessage("town-square", handle.ID()))
	req.Equal(0, cascader.cascades())
}

func TestOversee_UnmoderatedChannelSkipsTheVote(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	cascader := &fakeCascader{}

	_, beta, origin := overseeFixture(t)
	handle, err := beta.Send(context.Background(), "town-square", origin, false)
	req.NoError(err)

	// No moderators configured anywhere: nobody can vote.
	coordinator := NewCoordinator(log, Policy{Window: time.Second}, cascader, nil, nil)
	coordinator.Oversee(context.Background(), beta, townSquare, handle, origin)

	req.Empty(beta.ReactionMarkers("town-square", handle.ID()))
	req.True(beta.HasMessage("town-square", handle.ID()))
	req.Equal(1, cascader.terminalCount())
}

func TestPolicy_Moderated(t *testing.T) {
	req := require.New(t)
	policy := moderatedPolicy()

	req.True(policy.Moderated(townSquare))
	req.False(policy.Moderated(domain.ChannelRef{Service: "beta", ChannelID: "other"}))
	req.False(policy.Moderated(domain.ChannelRef{Service: "alpha", ChannelID: "town-square"}))

	nobody := Policy{Channels: map[string][]string{"beta": {"town-square"}}}
	req.False(nobody.Moderated(townSquare))
}
