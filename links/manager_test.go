package links

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chatmux/domain"
	"chatmux/domain/event"
	"chatmux/errors"
	"chatmux/mocks"
	"chatmux/services"
	"chatmux/services/memory"
	"chatmux/translate"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const retention = time.Minute

var (
	alphaGeneral = domain.ChannelRef{Service: "alpha", ChannelID: "general"}
	betaSquare   = domain.ChannelRef{Service: "beta", ChannelID: "town-square"}
)

func testRegistry(t *testing.T) (*services.Registry, *memory.Service, *memory.Service) {
	t.Helper()
	alpha := memory.NewService("alpha", "relay")
	alpha.AddChannel("general", "general")
	alpha.AddChannel("random", "random")

	beta := memory.NewService("beta", "relay")
	beta.AddChannel("town-square", "town-square")
	beta.SetMembers("town-square",
		domain.Member{Names: []string{"Carol"}, Mention: "<@111>"})

	registry := services.NewRegistry()
	require.NoError(t, registry.Register("alpha", alpha))
	require.NoError(t, registry.Register("beta", beta))
	return registry, alpha, beta
}

func testManager(t *testing.T) (*Manager, *memory.Service, *memory.Service) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry, alpha, beta := testRegistry(t)
	manager := NewManager(log, registry, translate.Translate, nil, nil, retention)
	return manager, alpha, beta
}

func TestAddLink_Validations(t *testing.T) {
	req := require.New(t)
	manager, _, _ := testManager(t)

	req.ErrorIs(manager.AddLink(alphaGeneral, alphaGeneral, false), errors.ErrSelfLink)
	req.ErrorIs(manager.AddLink(alphaGeneral,
		domain.ChannelRef{Service: "gamma", ChannelID: "x"}, false), errors.ErrUnknownService)

	req.NoError(manager.AddLink(alphaGeneral, betaSquare, false))
	req.ErrorIs(manager.AddLink(alphaGeneral, betaSquare, false), errors.ErrAlreadyLinked)
	// A duplicate in the opposite direction is the same link.
	req.ErrorIs(manager.AddLink(betaSquare, alphaGeneral, true), errors.ErrAlreadyLinked)
	req.Len(manager.Links(), 1)
}

func TestRemoveLink(t *testing.T) {
	req := require.New(t)
	manager, _, _ := testManager(t)

	req.ErrorIs(manager.RemoveLink(alphaGeneral, betaSquare), errors.ErrLinkNotFound)

	req.NoError(manager.AddLink(alphaGeneral, betaSquare, false))
	// Either endpoint order tears the link down.
	req.NoError(manager.RemoveLink(betaSquare, alphaGeneral))
	req.Empty(manager.Links())
}

func TestRoute_NoLinksMeansNoSends(t *testing.T) {
	req := require.New(t)
	manager, alpha, beta := testManager(t)
	ctx := context.Background()

	msg, err := alpha.Post("general", "abe", "hello world")
	req.NoError(err)
	manager.Route(ctx, msg)

	time.Sleep(50 * time.Millisecond)
	req.Empty(beta.Messages("town-square"))
}

func TestRoute_RelaysWithTranslationAndAuthorTag(t *testing.T) {
	req := require.New(t)
	manager, alpha, beta := testManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req.NoError(manager.AddLink(alphaGeneral, betaSquare, false))

	msg, err := alpha.Post("general", "abe", "hello @carol")
	req.NoError(err)
	manager.Route(ctx, msg)

	req.Eventually(func() bool {
		return len(beta.Messages("town-square")) == 1
	}, time.Second, 10*time.Millisecond)

	req.Equal([]string{"hello <@111>"}, beta.Messages("town-square"))
	req.Equal([]string{"abe (alpha/general)"}, beta.Authors("town-square"))
	// The origin channel itself gets nothing back.
	req.Equal([]string{"hello @carol"}, alpha.Messages("general"))
}

func TestRoute_LinksAreBidirectional(t *testing.T) {
	req := require.New(t)
	manager, alpha, beta := testManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req.NoError(manager.AddLink(alphaGeneral, betaSquare, false))

	msg, err := beta.Post("town-square", "bob", "hi from the other side")
	req.NoError(err)
	manager.Route(ctx, msg)

	req.Eventually(func() bool {
		return len(alpha.Messages("general")) == 1
	}, time.Second, 10*time.Millisecond)
	req.Equal([]string{"bob (beta/town-square)"}, alpha.Authors("general"))
}

func TestRoute_PerDestinationOrderPreserved(t *testing.T) {
	req := require.New(t)
	manager, alpha, beta := testManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req.NoError(manager.AddLink(alphaGeneral, betaSquare, false))

	expected := []string{"first", "second", "third", "fourth"}
	for _, content := range expected {
		msg, err := alpha.Post("general", "abe", content)
		req.NoError(err)
		manager.Route(ctx, msg)
	}

	req.Eventually(func() bool {
		return len(beta.Messages("town-square")) == len(expected)
	}, time.Second, 10*time.Millisecond)
	req.Equal(expected, beta.Messages("town-square"))
}

func TestCascadeDelete_RemovesExactlyTheCopies(t *testing.T) {
	req := require.New(t)
	manager, alpha, beta := testManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req.NoError(manager.AddLink(alphaGeneral, betaSquare, false))
	req.NoError(manager.AddLink(alphaGeneral,
		domain.ChannelRef{Service: "alpha", ChannelID: "random"}, false))

	// An unrelated message that must survive the cascade.
	bystander, err := alpha.Post("general", "eve", "unrelated")
	req.NoError(err)
	manager.Route(ctx, bystander)

	victim, err := alpha.Post("general", "abe", "delete me")
	req.NoError(err)
	manager.Route(ctx, victim)

	req.Eventually(func() bool {
		return len(manager.CorrelatedCopies(victim.ID)) == 2
	}, time.Second, 10*time.Millisecond)

	req.NoError(manager.CascadeDelete(ctx, victim))

	req.Equal([]string{"unrelated"}, beta.Messages("town-square"))
	req.Equal([]string{"unrelated"}, alpha.Messages("random"))
	// The correlation record is gone; a second cascade is a no-op.
	req.Empty(manager.CorrelatedCopies(victim.ID))
	req.NoError(manager.CascadeDelete(ctx, victim))
}

func TestMarkTerminal_DropsRecordWhenAllTargetsDone(t *testing.T) {
	req := require.New(t)
	manager, alpha, _ := testManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req.NoError(manager.AddLink(alphaGeneral, betaSquare, false))
	req.NoError(manager.AddLink(alphaGeneral,
		domain.ChannelRef{Service: "alpha", ChannelID: "random"}, false))

	msg, err := alpha.Post("general", "abe", "watched")
	req.NoError(err)
	manager.Route(ctx, msg)

	req.Eventually(func() bool {
		return len(manager.CorrelatedCopies(msg.ID)) == 2
	}, time.Second, 10*time.Millisecond)

	manager.MarkTerminal(msg.ID, betaSquare)
	req.Len(manager.CorrelatedCopies(msg.ID), 2)

	manager.MarkTerminal(msg.ID, domain.ChannelRef{Service: "alpha", ChannelID: "random"})
	req.Empty(manager.CorrelatedCopies(msg.ID))
}

func TestRawLinkSkipsTranslation(t *testing.T) {
	req := require.New(t)
	manager, alpha, beta := testManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req.NoError(manager.AddLink(alphaGeneral, betaSquare, true))

	msg, err := alpha.Post("general", "abe", "hello @carol")
	req.NoError(err)
	manager.Route(ctx, msg)

	req.Eventually(func() bool {
		return len(beta.Messages("town-square")) == 1
	}, time.Second, 10*time.Millisecond)
	req.Equal([]string{"hello @carol"}, beta.Messages("town-square"))
}

func TestRestoreLoadsPersistedLinks(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry, _, _ := testRegistry(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockILinkRepository(ctrl)

	stored := []domain.ChannelLink{{From: alphaGeneral, To: betaSquare}}
	store.EXPECT().LoadLinks().Return(stored, nil).Times(1)

	manager := NewManager(log, registry, translate.Translate, store, nil, retention)
	req.NoError(manager.Restore())
	req.Equal(stored, manager.Links())
}

func TestRouteEmitsRelayedEvent(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry, alpha, _ := testRegistry(t)
	events := make(chan event.DomainEvent, 8)
	manager := NewManager(log, registry, translate.Translate, nil, events, retention)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req.NoError(manager.AddLink(alphaGeneral, betaSquare, false))
	<-events // LinkAdded

	msg, err := alpha.Post("general", "abe", "observable")
	req.NoError(err)
	manager.Route(ctx, msg)

	select {
	case e := <-events:
		relayed, ok := e.(event.MessageRelayed)
		req.True(ok)
		req.Equal(msg.ID, relayed.OriginID)
		req.Equal(betaSquare, relayed.Target)
		req.Equal("observable", relayed.Content)
	case <-time.After(time.Second):
		req.Fail("No relay event emitted")
	}
}

func TestEnqueueShedsLoadWhenQueueFull(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry, alpha, _ := testRegistry(t)
	events := make(chan event.DomainEvent, 8)
	manager := NewManager(log, registry, translate.Translate, nil, events, retention)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A destination whose queue is already full and whose drain is not
	// keeping up. The next job for it must be dropped, not block Route.
	stuck := make(chan relayJob, 1)
	stuck <- relayJob{}
	manager.dispatch[betaSquare] = stuck

	msg, err := alpha.Post("general", "abe", "one too many")
	req.NoError(err)
	manager.enqueue(ctx, relayTarget{ref: betaSquare}, msg)

	select {
	case e := <-events:
		failed, ok := e.(event.RelayFailed)
		req.True(ok)
		req.Equal(msg.ID, failed.OriginID)
		req.Equal(betaSquare, failed.Target)
		req.Equal("destination queue full", failed.Reason)
	case <-time.After(time.Second):
		req.Fail("Dropped relay should surface as a RelayFailed event")
	}
	req.Len(stuck, 1, "the stalled queue must not grow")
}
