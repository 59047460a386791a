package domain

import "fmt"

// ChannelRef identifies one channel on one service.
type ChannelRef struct {
	Service   string
	ChannelID string
}

func (c ChannelRef) String() string {
	return fmt.Sprintf("%s/%s", c.Service, c.ChannelID)
}

// ChannelLink is a symmetric association between two channels.
// Raw links relay content without running the translator.
type ChannelLink struct {
	From ChannelRef
	To   ChannelRef
	Raw  bool
}

// Matches reports whether the link joins the same two channels,
// in either order.
func (l ChannelLink) Matches(a, b ChannelRef) bool {
	return (l.From == a && l.To == b) || (l.From == b && l.To == a)
}

func (l ChannelLink) String() string {
	arrow := "<->"
	if l.Raw {
		arrow = "<=>"
	}
	return fmt.Sprintf("%s %s %s", l.From, arrow, l.To)
}
