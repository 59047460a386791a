package event

import (
	"time"

	"chatmux/domain"

	"github.com/google/uuid"
)

// DomainEvent is anything the relay pipeline reports to sinks.
type DomainEvent interface {
	Origin() domain.ChannelRef
}

// MessageReceived is emitted when an adapter stream produces a message.
type MessageReceived struct {
	Message domain.ChatMessage
	Lang    string // ISO 639-1 code detected from the content, may be empty
	At      time.Time
}

func (e MessageReceived) Origin() domain.ChannelRef {
	return e.Message.Origin()
}

// MessageRelayed is emitted after one successful fan-out send.
type MessageRelayed struct {
	OriginID  uuid.UUID
	From      domain.ChannelRef
	Target    domain.ChannelRef
	RelayedID string
	User      string
	Content   string
	Lang      string
	At        time.Time
}

func (e MessageRelayed) Origin() domain.ChannelRef { return e.From }

// RelayFailed is emitted when a single target send fails. The failure is
// isolated to that target; other fan-out sends proceed.
type RelayFailed struct {
	OriginID uuid.UUID
	From     domain.ChannelRef
	Target   domain.ChannelRef
	Reason   string
	At       time.Time
}

func (e RelayFailed) Origin() domain.ChannelRef { return e.From }

// CascadeDeleted is emitted after every relayed copy of an origin
// message has been removed.
type CascadeDeleted struct {
	OriginID uuid.UUID
	From     domain.ChannelRef
	Copies   int
	At       time.Time
}

func (e CascadeDeleted) Origin() domain.ChannelRef { return e.From }

// LinkAdded is emitted when a channel link is established.
type LinkAdded struct {
	Link domain.ChannelLink
	At   time.Time
}

func (e LinkAdded) Origin() domain.ChannelRef { return e.Link.From }

// LinkRemoved is emitted when a channel link is torn down.
type LinkRemoved struct {
	Link domain.ChannelLink
	At   time.Time
}

func (e LinkRemoved) Origin() domain.ChannelRef { return e.Link.From }

// ModerationResolved is emitted when a moderation vote reaches a
// terminal state.
type ModerationResolved struct {
	OriginID  uuid.UUID
	Target    domain.ChannelRef
	RelayedID string
	Deleted   bool // true when a moderator vote removed the message
	At        time.Time
}

func (e ModerationResolved) Origin() domain.ChannelRef { return e.Target }
