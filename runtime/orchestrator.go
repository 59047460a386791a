package runtime

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"chatmux/contract"
	"chatmux/domain"
	"chatmux/domain/chat"
	"chatmux/domain/event"
	"chatmux/errors"
	"chatmux/links"
	"chatmux/moderation"
	"chatmux/runtime/workers"

	"github.com/samber/lo"
)

//go:embed censored/*
var censoredFolder embed.FS

// Orchestrator wires the relay: it owns the channel connections, the
// fanout pipeline and the supervisor, and implements the in-chat
// command surface. It contains no routing logic of its own; that lives
// in the link manager.
type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	registry       contract.IServiceRegistry
	manager        *links.Manager
	supervisor     contract.ISupervisor
	events         chan event.DomainEvent
	permanentSinks []contract.EventSink
	censorEnabled  bool
	maskingChar    rune
	censor         *moderation.Censor
	sinkTimeout    time.Duration
	healthInterval time.Duration
	connected      map[domain.ChannelRef]struct{}
	runCtx         context.Context
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	registry contract.IServiceRegistry, manager *links.Manager,
	events chan event.DomainEvent, sinkTimeout, healthInterval time.Duration,
	censorEnabled bool, maskingChar rune) *Orchestrator {
	return &Orchestrator{
		log:            log,
		registry:       registry,
		manager:        manager,
		supervisor:     supervisor,
		events:         events,
		sinkTimeout:    sinkTimeout,
		healthInterval: healthInterval,
		censorEnabled:  censorEnabled,
		maskingChar:    maskingChar,
		connected:      make(map[domain.ChannelRef]struct{}),
	}
}

func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// Start prepares the pipeline and launches supervision. Heavy work
// (wordlist loading, automaton build) happens before the short critical
// section, exactly so the lock is never held across I/O.
func (o *Orchestrator) Start(ctx context.Context) error {
	censor, err := o.prepareCensor()
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.runCtx = ctx
	o.censor = censor
	fanout := workers.NewEventFanout(o.log, o.events, o.sinkTimeout, o.permanentSinks...)
	o.supervisor.Add(o.manager)
	o.supervisor.Add(fanout)
	o.supervisor.Add(workers.NewHealthWorker(o.log, o.healthInterval))
	// Adapters that expose a command stream get a command worker each.
	for _, name := range o.registry.Names() {
		source, _ := o.registry.ByName(name)
		if stream, ok := source.(workers.CommandStream); ok {
			o.supervisor.Add(workers.NewCommandWorker(o.log, stream, o))
		}
	}
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers")
	go o.supervisor.Run(ctx)

	// Channels referenced by restored links reconnect on boot.
	for _, link := range o.manager.Links() {
		for _, ref := range []domain.ChannelRef{link.From, link.To} {
			if err := o.Connect(ref); err != nil {
				o.log.Warn("Failed to reconnect linked channel",
					"channel", ref.String(), "error", err)
			}
		}
	}
	return nil
}

// prepareCensor loads the embedded wordlists and builds the automaton.
func (o *Orchestrator) prepareCensor() (*moderation.Censor, error) {
	if !o.censorEnabled {
		return nil, nil
	}
	loader := NewWordlistLoader(censoredFolder)
	data, err := loader.LoadAll("censored")
	if err != nil {
		return nil, err
	}
	o.log.Info(fmt.Sprintf("%d censored files loaded [%s]",
		len(data.Languages), strings.Join(data.Languages, ",")))
	o.log.Info(fmt.Sprintf("%d unique censored words loaded", len(data.Words)))
	return moderation.NewCensor(data.Words, o.maskingChar)
}

// Connect ensures a supervised connection worker exists for a channel.
// Connecting twice is a no-op.
func (o *Orchestrator) Connect(ref domain.ChannelRef) error {
	source, ok := o.registry.ByName(ref.Service)
	if !ok {
		return fmt.Errorf("%w: %q", errors.ErrUnknownService, ref.Service)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.runCtx == nil {
		return fmt.Errorf("orchestrator not started")
	}
	if _, done := o.connected[ref]; done {
		return nil
	}
	worker := workers.NewConnectionWorker(o.log, source, ref, o.censor, o.manager, o.events)
	o.supervisor.Start(o.runCtx, worker)
	o.connected[ref] = struct{}{}
	return nil
}

// HandleCommand executes one in-chat command invoked from origin. The
// returned reply is posted back to the invoking channel by the caller.
// Non-command text returns ok=false.
func (o *Orchestrator) HandleCommand(ctx context.Context, origin domain.ChannelRef, text string) (string, bool) {
	cmd, ok := chat.Parse(text)
	if !ok {
		return "", false
	}

	switch cmd.Kind {
	case chat.ListLinks:
		return o.renderLinks(), true
	case chat.Unlink:
		return o.unlink(origin, cmd), true
	default:
		return o.link(origin, cmd, cmd.Kind == chat.LinkRaw), true
	}
}

func (o *Orchestrator) link(origin domain.ChannelRef, cmd chat.Command, raw bool) string {
	target, source, err := o.resolveTarget(cmd)
	if err != nil {
		return err.Error()
	}

	if err := o.manager.AddLink(origin, target, raw); err != nil {
		return err.Error()
	}
	for _, ref := range []domain.ChannelRef{origin, target} {
		if err := o.Connect(ref); err != nil {
			o.log.Warn("Failed to connect linked channel", "channel", ref.String(), "error", err)
		}
	}

	originSource, _ := o.registry.ByName(origin.Service)
	return fmt.Sprintf("Linked %s to %s/%s",
		prettify(originSource, origin), target.Service, source.PrettifyChannelRef(target.ChannelID))
}

func (o *Orchestrator) unlink(origin domain.ChannelRef, cmd chat.Command) string {
	target, source, err := o.resolveTarget(cmd)
	if err != nil {
		return err.Error()
	}
	if err := o.manager.RemoveLink(origin, target); err != nil {
		return err.Error()
	}
	originSource, _ := o.registry.ByName(origin.Service)
	return fmt.Sprintf("Unlinked %s from %s/%s",
		prettify(originSource, origin), target.Service, source.PrettifyChannelRef(target.ChannelID))
}

// resolveTarget turns the command arguments into a channel reference on
// a registered service.
func (o *Orchestrator) resolveTarget(cmd chat.Command) (domain.ChannelRef, contract.Source, error) {
	source, ok := o.registry.ByName(cmd.Service)
	if !ok {
		return domain.ChannelRef{}, nil, fmt.Errorf("%w: unknown service %q",
			errors.ErrInvalidReference, cmd.Service)
	}
	channelID, err := source.ParseChannelRef(cmd.Channel)
	if err != nil {
		return domain.ChannelRef{}, nil, err
	}
	return domain.ChannelRef{Service: strings.ToLower(cmd.Service), ChannelID: channelID}, source, nil
}

func (o *Orchestrator) renderLinks() string {
	table := o.manager.Links()
	if len(table) == 0 {
		return "No channels are linked"
	}
	lines := lo.Map(table, func(l domain.ChannelLink, _ int) string { return l.String() })
	return strings.Join(lines, "\n")
}

func prettify(source contract.Source, ref domain.ChannelRef) string {
	if source == nil {
		return ref.String()
	}
	return fmt.Sprintf("%s/%s", ref.Service, source.PrettifyChannelRef(ref.ChannelID))
}

// Stop initiates a graceful shutdown of all supervised workers.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
