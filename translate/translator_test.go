package translate

import (
	"context"
	"fmt"
	"testing"

	"chatmux/domain"
	"chatmux/errors"
	"chatmux/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fixedDirectory is a static in-test directory.
type fixedDirectory struct {
	members  []domain.Member
	channels []domain.Channel
	emotes   []domain.Emote
}

func (d fixedDirectory) Members(context.Context) ([]domain.Member, error)   { return d.members, nil }
func (d fixedDirectory) Channels(context.Context) ([]domain.Channel, error) { return d.channels, nil }
func (d fixedDirectory) Emotes(context.Context) ([]domain.Emote, error)     { return d.emotes, nil }

func testDirectory() fixedDirectory {
	return fixedDirectory{
		members: []domain.Member{
			{Names: []string{"Carol", "carol#1234"}, Mention: "<@111>"},
			{Names: []string{"dave"}, Mention: "<@222>"},
		},
		channels: []domain.Channel{
			{Name: "general", Mention: "<#333>"},
			{Name: "random", Mention: "<#444>"},
		},
		emotes: []domain.Emote{
			{Name: "partyparrot", Native: "<:partyparrot:555>"},
		},
	}
}

func TestTranslate(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	dir := testDirectory()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"mention", "hello @carol", "hello <@111>"},
		{"mention is case-insensitive", "hello @CAROL", "hello <@111>"},
		{"alias resolves to the same member", "ping @carol#1234", "ping <@111>"},
		{"channel reference", "see #general", "see <#333>"},
		{"custom emote", "nice :partyparrot:", "nice <:partyparrot:555>"},
		{"unicode emote fallback", "well done :thumbsup:", "well done 👍"},
		{"unresolved stays verbatim", "hello @nobody in #nowhere :mystery:", "hello @nobody in #nowhere :mystery:"},
		{"escaped token stays verbatim", `literally \@carol`, `literally \@carol`},
		{"all passes combined", "hey @dave join #random :partyparrot:", "hey <@222> join <#444> <:partyparrot:555>"},
		{"no tokens", "plain text", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Translate(ctx, tt.content, dir)
			req.NoError(err)
			req.Equal(tt.expected, out)
		})
	}
}

// Translating already-translated content must change nothing: native
// forms do not look like neutral tokens anymore.
func TestTranslate_Idempotent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	dir := testDirectory()

	once, err := Translate(ctx, "hey @carol see #general :thumbsup:", dir)
	req.NoError(err)
	twice, err := Translate(ctx, once, dir)
	req.NoError(err)
	req.Equal(once, twice)
}

func TestTranslate_FirstListingWinsOnCollision(t *testing.T) {
	req := require.New(t)
	dir := fixedDirectory{
		members: []domain.Member{
			{Names: []string{"Sam"}, Mention: "<@1>"},
			{Names: []string{"sam"}, Mention: "<@2>"},
		},
	}

	out, err := Translate(context.Background(), "cc @sam", dir)
	req.NoError(err)
	req.Equal("cc <@1>", out)
}

func TestTranslate_DirectoryFailureDegrades(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	dir := mocks.NewMockDirectory(ctrl)

	boom := fmt.Errorf("directory backend down")
	dir.EXPECT().Members(gomock.Any()).Return(nil, boom).Times(1)
	dir.EXPECT().Channels(gomock.Any()).Return(nil, boom).Times(1)

	// Content carrying member and channel tokens: both passes fail, the
	// content comes back untouched but relayable.
	out, err := Translate(context.Background(), "hello @carol in #general", dir)
	req.ErrorIs(err, errors.ErrDirectoryUnavailable)
	req.Equal("hello @carol in #general", out)
}

func TestTranslate_EmoteFallbackSurvivesDirectoryFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	dir := mocks.NewMockDirectory(ctrl)

	dir.EXPECT().Emotes(gomock.Any()).Return(nil, fmt.Errorf("down")).Times(1)

	out, err := Translate(context.Background(), "ok :thumbsup:", dir)
	req.ErrorIs(err, errors.ErrDirectoryUnavailable)
	req.Equal("ok 👍", out)
}

func TestTranslate_DirectoryNotConsultedWithoutTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	dir := mocks.NewMockDirectory(ctrl)
	// No EXPECT calls: any directory fetch fails the test.

	out, err := Translate(context.Background(), "nothing to resolve here", dir)
	require.NoError(t, err)
	require.Equal(t, "nothing to resolve here", out)
}
