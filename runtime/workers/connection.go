package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chatmux/contract"
	"chatmux/domain"
	"chatmux/domain/event"
	"chatmux/moderation"

	"github.com/abadojack/whatlanggo"
)

// Ensure *ConnectionWorker implements the contract.Worker interface at
// compile time.
var _ contract.Worker = (*ConnectionWorker)(nil)

// ConnectionWorker drains one adapter stream and feeds the link
// manager. One worker runs per connected (service, channel) pair; the
// stream is not restartable, so a closed stream ends the worker.
type ConnectionWorker struct {
	log     *slog.Logger
	source  contract.Source
	ref     domain.ChannelRef
	censor  *moderation.Censor // nil when censoring is disabled
	manager contract.ILinkManager
	events  chan<- event.DomainEvent
}

func NewConnectionWorker(log *slog.Logger, source contract.Source,
	ref domain.ChannelRef, censor *moderation.Censor,
	manager contract.ILinkManager, events chan<- event.DomainEvent) *ConnectionWorker {
	return &ConnectionWorker{
		log:     log,
		source:  source,
		ref:     ref,
		censor:  censor,
		manager: manager,
		events:  events,
	}
}

func (w *ConnectionWorker) Run(ctx context.Context) error {
	stream, err := w.source.Connect(ctx, w.ref.ChannelID)
	if err != nil {
		return fmt.Errorf("connecting %s: %w", w.ref, err)
	}
	w.log.Info(fmt.Sprintf("Connected to %s", w.ref))

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return nil
		case msg, ok := <-stream:
			if !ok {
				w.log.Info(fmt.Sprintf("Stream ended for %s", w.ref))
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

func (w *ConnectionWorker) handle(ctx context.Context, msg domain.ChatMessage) {
	if w.censor != nil {
		if masked, hit := w.censor.Apply(msg.Content); hit {
			w.log.Debug("Censored relayed content", "origin", msg.Origin().String())
			msg.Content = masked
		}
	}

	info := whatlanggo.Detect(msg.Content)
	w.emit(event.MessageReceived{
		Message: msg,
		Lang:    info.Lang.Iso6391(),
		At:      time.Now(),
	})

	w.manager.Route(ctx, msg)
}

func (w *ConnectionWorker) emit(e event.DomainEvent) {
	if w.events == nil {
		return
	}
	select {
	case w.events <- e:
	default:
		w.log.Debug("Event channel full, telemetry event lost")
	}
}
