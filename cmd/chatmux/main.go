package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"chatmux/assets"
	"chatmux/auth"
	"chatmux/contract"
	"chatmux/domain/event"
	"chatmux/internal"
	"chatmux/links"
	"chatmux/moderation"
	"chatmux/observability"
	"chatmux/repositories"
	"chatmux/runtime"
	"chatmux/runtime/workers"
	"chatmux/services"
	"chatmux/services/memory"
	"chatmux/sink"
	"chatmux/translate"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the relay lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// A build missing its static resources must not come up at all.
	if err := assets.Check(); err != nil {
		return err
	}

	maskingChar, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return err
	}
	policy, err := config.Policy()
	if err != nil {
		return err
	}

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	//  Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Platforms
	registry := services.NewRegistry()
	for name, svc := range demoServices() {
		if err := registry.Register(name, svc); err != nil {
			return err
		}
	}

	// 4. Relay core
	events := make(chan event.DomainEvent, config.EventBufferSize)
	linkRepository := repositories.NewLinkRepository(db, log)
	auditRepository := repositories.NewAuditRepository(db, log)

	manager := links.NewManager(log, registry, translate.Translate,
		linkRepository, events, config.CorrelationRetention)
	if err := manager.Restore(); err != nil {
		return fmt.Errorf("link table restore failed: %w", err)
	}
	coordinator := moderation.NewCoordinator(log, policy, manager, nil, events)
	manager.SetOverseer(coordinator)

	// 5. Sinks & telemetry
	monitor := observability.NewMonitor(log)
	timeline := sink.NewTimeline(config.TimelineLimit)
	auditSink := sink.NewAuditSink(auditRepository, log, config.AuditBatchSize, config.AuditBufferTimeout)
	defer func() { _ = auditSink.Flush() }()

	supervisor := workers.NewSupervisor(log)
	orchestrator := runtime.NewOrchestrator(log, supervisor, registry, manager,
		events, config.SinkTimeout, config.HealthInterval,
		config.CensorEnabled, maskingChar)
	orchestrator.Add(sink.NewConsoleSink(), auditSink, timeline, monitor)

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 7. Start the Engine
	if err = orchestrator.Start(ctx); err != nil {
		return fmt.Errorf("orchestrator failed to start: %w", err)
	}
	go monitor.Listen(ctx, config.MetricInterval)

	// 8. Admin API
	issuer := auth.NewTokenIssuer(config.AdminTokenSecret, config.AuthTokenDuration)
	admin := internal.NewAdminServer(log, issuer, config.AdminUsername,
		config.AdminPasswordHash, manager, timeline, auditRepository, monitor)

	errChan := make(chan error, 1)
	go func() {
		if err := admin.Listen(ctx, config.AdminPort); err != nil {
			errChan <- fmt.Errorf("admin server error: %w", err)
		}
	}()

	// 9. Console input: "service/channelId user: content" posts a message
	// on an in-memory platform, same as a user typing there.
	go consoleInput(ctx, registry, log)

	// 10. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 11. Final Cleanup
	orchestrator.Stop()
	log.Info("Program stopped cleanly")

	return nil
}

// demoServices builds the two loopback platforms wired by default. Real
// platform adapters register here the same way once they exist.
func demoServices() map[string]*memory.Service {
	alpha := memory.NewService("alpha", "relay")
	alpha.AddChannel("general", "general")
	alpha.AddChannel("random", "random")

	beta := memory.NewService("beta", "relay")
	beta.AddChannel("town-square", "town-square")
	return map[string]*memory.Service{"alpha": alpha, "beta": beta}
}

// consoleInput turns stdin lines of the form
// "service/channelId user: content" into platform posts.
func consoleInput(ctx context.Context, registry contract.IServiceRegistry, log *slog.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		where, rest, foundWho := strings.Cut(line, " ")
		user, content, foundWhat := strings.Cut(rest, ": ")
		service, channelID, foundRef := strings.Cut(where, "/")
		if !foundWho || !foundWhat || !foundRef {
			log.Warn("Input must be \"service/channelId user: content\"", "line", line)
			continue
		}

		source, ok := registry.ByName(service)
		if !ok {
			log.Warn("Unknown service", "service", service)
			continue
		}
		platform, ok := source.(*memory.Service)
		if !ok {
			log.Warn("Console posting only works on in-memory platforms", "service", service)
			continue
		}
		if _, err := platform.Post(channelID, user, content); err != nil {
			log.Warn("Post failed", "error", err)
		}
	}
}
