package workers

import (
	"context"
	"log/slog"

	"chatmux/contract"
	"chatmux/domain"
)

var _ contract.Worker = (*CommandWorker)(nil)

// CommandStream is satisfied by adapters that surface in-chat command
// messages separately from their relay streams.
type CommandStream interface {
	Commands() <-chan domain.ChatMessage
	Reply(channelID, content string)
}

// CommandHandler executes one command and returns the reply text. The
// second return is false when the text is not a recognized command.
type CommandHandler interface {
	HandleCommand(ctx context.Context, origin domain.ChannelRef, text string) (string, bool)
}

// CommandWorker drains one adapter's command stream, executes each
// command and posts the outcome back to the invoking channel.
type CommandWorker struct {
	log     *slog.Logger
	stream  CommandStream
	handler CommandHandler
}

func NewCommandWorker(log *slog.Logger, stream CommandStream, handler CommandHandler) *CommandWorker {
	return &CommandWorker{log: log, stream: stream, handler: handler}
}

func (w *CommandWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return nil
		case msg, ok := <-w.stream.Commands():
			if !ok {
				return nil
			}
			reply, handled := w.handler.HandleCommand(ctx, msg.Origin(), msg.Content)
			if !handled {
				w.log.Debug("Ignoring non-command on command stream", "content", msg.Content)
				continue
			}
			w.log.Info("Executed command", "origin", msg.Origin().String(), "command", msg.Content)
			w.stream.Reply(msg.ChannelID, reply)
		}
	}
}
