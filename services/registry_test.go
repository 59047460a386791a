package services

import (
	"testing"

	"chatmux/services/memory"

	"github.com/stretchr/testify/require"
)

func TestRegistry_ByNameIsCaseInsensitive(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	source := memory.NewService("Alpha", "chatmux-bot")
	req.NoError(registry.Register("Alpha", source))

	for _, name := range []string{"alpha", "ALPHA", "Alpha"} {
		got, ok := registry.ByName(name)
		req.True(ok, "lookup %q", name)
		req.Same(source, got)
	}
}

func TestRegistry_UnknownNameIsNotFound(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	_, ok := registry.ByName("mixer")
	req.False(ok)
}

func TestRegistry_DuplicateRegistrationFails(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	req.NoError(registry.Register("alpha", memory.NewService("alpha", "bot")))
	req.Error(registry.Register("ALPHA", memory.NewService("alpha", "bot")))
}

func TestRegistry_NamesAreStable(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	req.NoError(registry.Register("twitch", memory.NewService("twitch", "bot")))
	req.NoError(registry.Register("discord", memory.NewService("discord", "bot")))

	req.Equal([]string{"discord", "twitch"}, registry.Names())
}
