//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"chatmux/domain"
	"chatmux/domain/event"
)

// Source is the live connection of one platform adapter. Exactly one
// Source exists per configured service instance; the relay core never
// looks behind this boundary.
type Source interface {
	// Connect produces the live stream of inbound messages for a channel.
	// The stream is potentially infinite and not restartable. The adapter
	// filters out messages authored by Identity and any command syntax
	// its own front-end recognizes.
	Connect(ctx context.Context, channelID string) (<-chan domain.ChatMessage, error)

	// Send posts content to the platform. raw bypasses translation and is
	// used when the message already originated on this platform. The
	// returned handle is needed for later moderation cascades.
	Send(ctx context.Context, channelID string, msg domain.ChatMessage, raw bool) (MessageHandle, error)

	// ParseChannelRef accepts a raw channel id or the platform's
	// channel-mention syntax. Fails with errors.ErrInvalidReference when
	// neither pattern matches.
	ParseChannelRef(text string) (string, error)

	// PrettifyChannelRef is the inverse lookup, for human-readable
	// confirmation messages.
	PrettifyChannelRef(channelID string) string

	// Directory exposes the channel's member/channel/emote listings for
	// the translator.
	Directory(channelID string) Directory

	// WatchReactions subscribes to reaction events on one message. The
	// returned stop function cancels the subscription and must be safe to
	// call more than once.
	WatchReactions(ctx context.Context, channelID, messageID string) (<-chan domain.Reaction, func(), error)

	// Identity is the relay's own automated user on this platform.
	Identity() string
}

// MessageHandle points at a message the relay created on a platform.
// All operations are idempotent.
type MessageHandle interface {
	ID() string
	Delete(ctx context.Context) error
	React(ctx context.Context, marker string) error
	Unreact(ctx context.Context, marker string) error
}

// Directory is a destination-supplied lookup. Listings are finite, fully
// materialized, and only valid at call time; callers fetch fresh per use.
type Directory interface {
	Members(ctx context.Context) ([]domain.Member, error)
	Channels(ctx context.Context) ([]domain.Channel, error)
	Emotes(ctx context.Context) ([]domain.Emote, error)
}

// IServiceRegistry resolves lowercase service names to live Sources.
type IServiceRegistry interface {
	ByName(name string) (Source, bool)
	Names() []string
}

// ILinkManager is the routing core: the link table, the fan-out and the
// cascade paths.
type ILinkManager interface {
	AddLink(a, b domain.ChannelRef, raw bool) error
	RemoveLink(a, b domain.ChannelRef) error
	Links() []domain.ChannelLink
	Route(ctx context.Context, origin domain.ChatMessage)
	CascadeDelete(ctx context.Context, origin domain.ChatMessage) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}
