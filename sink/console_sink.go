// Package sink holds the event consumers fed by the fanout worker.
package sink

import (
	"context"

	"chatmux/domain/event"

	"github.com/gookit/color"
)

// ConsoleSink is a terminal tap on the relay: it renders traffic and
// moderation outcomes for an operator watching the process.
type ConsoleSink struct{}

func NewConsoleSink() ConsoleSink { return ConsoleSink{} }

func (ConsoleSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageReceived:
		color.Gray.Println(evt.Message.String())
	case event.MessageRelayed:
		color.Green.Printf("[%s] -> [%s] <%s> %s\n",
			evt.From, evt.Target, evt.User, evt.Content)
	case event.RelayFailed:
		color.Red.Printf("[%s] -> [%s] send failed: %s\n",
			evt.From, evt.Target, evt.Reason)
	case event.CascadeDeleted:
		color.Yellow.Printf("[%s] cascade removed %d copies\n", evt.From, evt.Copies)
	case event.LinkAdded:
		color.Cyan.Printf("link added: %s\n", evt.Link)
	case event.LinkRemoved:
		color.Cyan.Printf("link removed: %s\n", evt.Link)
	case event.ModerationResolved:
		verdict := "kept after timeout"
		if evt.Deleted {
			verdict = "deleted by vote"
		}
		color.Magenta.Printf("[%s] message %s %s\n", evt.Target, evt.RelayedID, verdict)
	}
	return nil
}
