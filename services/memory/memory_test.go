package memory

import (
	"context"
	"testing"
	"time"

	"chatmux/domain"
	"chatmux/errors"

	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) *Service {
	t.Helper()
	svc := NewService("alpha", "relay")
	svc.AddChannel("general", "general")
	svc.SetMembers("general", domain.Member{Names: []string{"Carol"}, Mention: "<@111>"})
	svc.SetEmotes("general", domain.Emote{Name: "partyparrot", Native: "<:pp:1>"})
	return svc
}

func TestConnectDeliversPosts(t *testing.T) {
	req := require.New(t)
	svc := testService(t)

	stream, err := svc.Connect(context.Background(), "general")
	req.NoError(err)

	posted, err := svc.Post("general", "abe", "hello")
	req.NoError(err)

	select {
	case msg := <-stream:
		req.Equal(posted.ID, msg.ID)
		req.Equal("abe", msg.User)
		req.Equal("hello", msg.Content)
		req.Equal(domain.ChannelRef{Service: "alpha", ChannelID: "general"}, msg.Origin())
	case <-time.After(time.Second):
		req.Fail("Message did not reach the stream")
	}
}

func TestConnectUnknownChannelFails(t *testing.T) {
	svc := testService(t)
	_, err := svc.Connect(context.Background(), "nope")
	require.ErrorIs(t, err, errors.ErrInvalidReference)
}

func TestStreamFiltersOwnIdentityAndCommands(t *testing.T) {
	req := require.New(t)
	svc := testService(t)

	stream, err := svc.Connect(context.Background(), "general")
	req.NoError(err)

	_, err = svc.Post("general", "relay", "relayed copy")
	req.NoError(err)
	_, err = svc.Post("general", "abe", "+link beta #town-square")
	req.NoError(err)
	_, err = svc.Post("general", "abe", "a normal message")
	req.NoError(err)

	msg := <-stream
	req.Equal("a normal message", msg.Content)
	req.Empty(stream)
}

func TestCommandsStream(t *testing.T) {
	req := require.New(t)
	svc := testService(t)

	_, err := svc.Post("general", "abe", "~links")
	req.NoError(err)

	select {
	case cmd := <-svc.Commands():
		req.Equal("~links", cmd.Content)
	case <-time.After(time.Second):
		req.Fail("Command did not reach the command stream")
	}
}

func TestActionsDeleteKickBan(t *testing.T) {
	req := require.New(t)
	svc := testService(t)
	ctx := context.Background()

	msg, err := svc.Post("general", "abe", "offensive")
	req.NoError(err)

	req.NoError(msg.Actions.Delete(ctx))
	req.Empty(svc.Messages("general"))
	// Delete is idempotent.
	req.NoError(msg.Actions.Delete(ctx))

	kicked, err := svc.Post("general", "kara", "also offensive")
	req.NoError(err)
	req.NoError(kicked.Actions.Kick(ctx))
	req.True(svc.IsMuted("general", "kara"))
	// A muted author's posts go nowhere.
	_, err = svc.Post("general", "kara", "let me back in")
	req.NoError(err)
	req.Empty(svc.Messages("general"))

	banned, err := svc.Post("general", "mallory", "worst")
	req.NoError(err)
	req.NoError(banned.Actions.Ban(ctx))
	req.True(svc.IsBanned("general", "mallory"))
}

func TestSendStoresAuthorTag(t *testing.T) {
	req := require.New(t)
	svc := testService(t)

	origin := domain.ChatMessage{
		Service: "beta",
		Channel: "town-square",
		User:    "bob",
		Content: "over the wire",
	}
	handle, err := svc.Send(context.Background(), "general", origin, false)
	req.NoError(err)
	req.NotEmpty(handle.ID())
	req.Equal([]string{"bob (beta/town-square)"}, svc.Authors("general"))
}

func TestSendFallsBackToServiceInitial(t *testing.T) {
	req := require.New(t)
	svc := testService(t)

	origin := domain.ChatMessage{
		Service: "beta",
		Channel: "an-unreasonably-long-channel-name",
		User:    "bartholomew-the-third",
		Content: "hi",
	}
	_, err := svc.Send(context.Background(), "general", origin, false)
	req.NoError(err)
	req.Equal([]string{"bartholomew-the-third (B/an-unreasonably-long-channel-name)"},
		svc.Authors("general"))
}

func TestSendUnknownChannelIsAdapterFailure(t *testing.T) {
	svc := testService(t)
	_, err := svc.Send(context.Background(), "nope", domain.ChatMessage{}, false)
	require.ErrorIs(t, err, errors.ErrAdapterSendFailure)
}

func TestParseChannelRef(t *testing.T) {
	req := require.New(t)
	svc := testService(t)

	id, err := svc.ParseChannelRef("#general")
	req.NoError(err)
	req.Equal("general", id)

	id, err = svc.ParseChannelRef("general")
	req.NoError(err)
	req.Equal("general", id)

	_, err = svc.ParseChannelRef("#missing")
	req.ErrorIs(err, errors.ErrInvalidReference)

	_, err = svc.ParseChannelRef("not a ref")
	req.ErrorIs(err, errors.ErrInvalidReference)

	req.Equal("#general", svc.PrettifyChannelRef("general"))
}

func TestDirectory(t *testing.T) {
	req := require.New(t)
	svc := testService(t)
	ctx := context.Background()

	dir := svc.Directory("general")
	members, err := dir.Members(ctx)
	req.NoError(err)
	req.Len(members, 1)

	channels, err := dir.Channels(ctx)
	req.NoError(err)
	req.Len(channels, 1)

	emotes, err := dir.Emotes(ctx)
	req.NoError(err)
	req.Len(emotes, 1)

	gone := svc.Directory("missing")
	_, err = gone.Members(ctx)
	req.ErrorIs(err, errors.ErrDirectoryUnavailable)
}

func TestWatchReactions(t *testing.T) {
	req := require.New(t)
	svc := testService(t)
	ctx := context.Background()

	msg, err := svc.Post("general", "abe", "react to me")
	req.NoError(err)
	messageID := msg.Actions.(*actions).messageID

	stream, stop, err := svc.WatchReactions(ctx, "general", messageID)
	req.NoError(err)
	defer stop()

	svc.React("general", messageID, "mod", "❌")

	select {
	case r := <-stream:
		req.Equal("mod", r.UserID)
		req.Equal("❌", r.Marker)
		req.Equal(messageID, r.MessageID)
	case <-time.After(time.Second):
		req.Fail("Reaction did not reach the watcher")
	}

	// Stop is idempotent and closes the stream.
	stop()
	stop()
	_, open := <-stream
	req.False(open)

	req.Equal([]string{"❌"}, svc.ReactionMarkers("general", messageID))
}
