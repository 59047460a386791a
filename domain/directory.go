package domain

// Directory entries are supplied by the destination adapter so the
// translator can rewrite neutral tokens into the platform-native form.
// Listings are finite and valid at call time only; nothing here is cached.

// Member is one user of the destination channel. Names holds every name
// the user is known by (display name, account name); the first
// case-insensitive match against a token wins.
type Member struct {
	Names   []string
	Mention string // platform-native mention text
}

// Channel is one referenceable channel of the destination.
type Channel struct {
	Name    string
	Mention string
}

// Emote is one custom emote of the destination.
type Emote struct {
	Name   string
	Native string // platform-native emote text
}

// Reaction is a single reaction event observed on a relayed message.
type Reaction struct {
	MessageID string
	UserID    string
	Marker    string
}
