package workers

import (
	"context"
	"log/slog"
	"time"

	"chatmux/contract"
	"chatmux/domain/event"
)

// EventFanout broadcasts domain events to the registered sinks.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering, durability, or retries. EventFanout is not a message broker.
//
// It is intended for observability and side effects (console, audit,
// metrics), not for the relay path itself.
type EventFanout struct {
	log         *slog.Logger
	events      chan event.DomainEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

var _ contract.Worker = (*EventFanout)(nil)

func NewEventFanout(log *slog.Logger, events chan event.DomainEvent,
	sinkTimeout time.Duration, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{log: log, events: events, sinks: sinks, sinkTimeout: sinkTimeout}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		case evt, ok := <-w.events:
			if !ok {
				w.log.Debug("Event channel closed")
				return nil
			}
			w.Fanout(ctx, evt)
		}
	}
}

// Fanout delivers one event to every sink. A sink that blocks past the
// timeout loses the event; a slow consumer must not stall telemetry.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, s := range w.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := s.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink failed to consume event", "error", err)
		}
		cancel()
	}
}
