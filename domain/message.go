// Package domain contains core concepts of the relay.
// This file defines the neutral chat message model.
// Messages are immutable once produced by an adapter.
package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Actions are the moderation capabilities an adapter binds to a message
// at creation time. Every method must be idempotent: acting twice on an
// already-removed message is not an error.
type Actions interface {
	Delete(ctx context.Context) error
	Kick(ctx context.Context) error
	Ban(ctx context.Context) error
}

// ChatMessage is an immutable inbound message in its neutral form.
type ChatMessage struct {
	ID        uuid.UUID
	Service   string // lowercase service name of the origin
	Channel   string // display name of the origin channel
	ChannelID string
	User      string
	Content   string
	Avatar    string // optional
	Actions   Actions
}

// Origin returns the (service, channel) pair this message arrived on.
func (m ChatMessage) Origin() ChannelRef {
	return ChannelRef{Service: m.Service, ChannelID: m.ChannelID}
}

func (m ChatMessage) String() string {
	return fmt.Sprintf("[%s/%s] <%s> %s", m.Service, m.Channel, m.User, m.Content)
}
