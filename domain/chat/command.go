// Package chat parses the in-chat command surface of the relay.
package chat

import (
	"strings"
)

type Kind int

const (
	// Link establishes a channel link from the invoking context.
	Link Kind = iota
	// LinkRaw establishes a link that relays without translation.
	LinkRaw
	// Unlink tears an existing link down.
	Unlink
	// ListLinks prints the current link table.
	ListLinks
)

// Command is one parsed relay command.
type Command struct {
	Kind    Kind
	Service string
	Channel string
}

// Parse recognizes the relay command syntax:
//
//	+link <service> <channelRef>
//	+linkraw <service> <channelRef>
//	-link <service> <channelRef>
//	~links
//
// Anything else is ordinary chat content.
func Parse(text string) (Command, bool) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return Command{}, false
	}

	switch fields[0] {
	case "~links":
		return Command{Kind: ListLinks}, true
	case "+link", "+linkraw", "-link":
		if len(fields) != 3 {
			return Command{}, false
		}
		kind := Link
		switch fields[0] {
		case "+linkraw":
			kind = LinkRaw
		case "-link":
			kind = Unlink
		}
		return Command{Kind: kind, Service: fields[1], Channel: fields[2]}, true
	default:
		return Command{}, false
	}
}
