package memory

import (
	"context"
	"fmt"
	"time"

	"chatmux/domain"
	"chatmux/errors"
)

// handle points at a message this service created via Send.
type handle struct {
	svc       *Service
	channelID string
	messageID string
}

func (h *handle) ID() string { return h.messageID }

func (h *handle) Delete(_ context.Context) error {
	h.svc.mu.Lock()
	defer h.svc.mu.Unlock()
	if c, ok := h.svc.channels[h.channelID]; ok {
		delete(c.messages, h.messageID)
	}
	return nil
}

func (h *handle) React(_ context.Context, marker string) error {
	// The platform reports the relay's own reaction like any other; the
	// coordinator is responsible for ignoring it.
	h.svc.React(h.channelID, h.messageID, h.svc.identity, marker)
	return nil
}

func (h *handle) Unreact(_ context.Context, marker string) error {
	h.svc.mu.Lock()
	defer h.svc.mu.Unlock()
	c, ok := h.svc.channels[h.channelID]
	if !ok {
		return nil
	}
	stored, ok := c.messages[h.messageID]
	if !ok {
		// Already deleted; removing a reaction is a no-op then.
		return nil
	}
	if users, ok := stored.reactions[marker]; ok {
		delete(users, h.svc.identity)
	}
	return nil
}

// actions binds delete/kick/ban to a user-authored message. Kick is a
// timed mute on this platform; there is no true kick concept.
type actions struct {
	svc       *Service
	channelID string
	messageID string
	author    string
}

var _ domain.Actions = (*actions)(nil)

func (a *actions) Delete(_ context.Context) error {
	a.svc.mu.Lock()
	defer a.svc.mu.Unlock()
	if c, ok := a.svc.channels[a.channelID]; ok {
		delete(c.messages, a.messageID)
	}
	return nil
}

func (a *actions) Kick(_ context.Context) error {
	a.svc.mu.Lock()
	defer a.svc.mu.Unlock()
	c, ok := a.svc.channels[a.channelID]
	if !ok {
		return nil
	}
	c.mutedUntil[a.author] = time.Now().Add(kickDuration)
	delete(c.messages, a.messageID)
	return nil
}

func (a *actions) Ban(_ context.Context) error {
	a.svc.mu.Lock()
	defer a.svc.mu.Unlock()
	c, ok := a.svc.channels[a.channelID]
	if !ok {
		return nil
	}
	c.banned[a.author] = struct{}{}
	delete(c.messages, a.messageID)
	return nil
}

// directory reads the channel listings at call time; nothing is cached.
type directory struct {
	svc       *Service
	channelID string
}

func (d *directory) channel() (*channel, error) {
	c, ok := d.svc.channels[d.channelID]
	if !ok {
		return nil, fmt.Errorf("%w: channel %q on %s", errors.ErrDirectoryUnavailable, d.channelID, d.svc.name)
	}
	return c, nil
}

func (d *directory) Members(_ context.Context) ([]domain.Member, error) {
	d.svc.mu.Lock()
	defer d.svc.mu.Unlock()
	c, err := d.channel()
	if err != nil {
		return nil, err
	}
	return append([]domain.Member(nil), c.members...), nil
}

func (d *directory) Channels(_ context.Context) ([]domain.Channel, error) {
	d.svc.mu.Lock()
	defer d.svc.mu.Unlock()
	c, err := d.channel()
	if err != nil {
		return nil, err
	}
	return append([]domain.Channel(nil), c.listing...), nil
}

func (d *directory) Emotes(_ context.Context) ([]domain.Emote, error) {
	d.svc.mu.Lock()
	defer d.svc.mu.Unlock()
	c, err := d.channel()
	if err != nil {
		return nil, err
	}
	return append([]domain.Emote(nil), c.emotes...), nil
}
