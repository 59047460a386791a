// Package memory is an in-process platform adapter. It implements the
// full Source contract against local state and is used by the demo
// wiring and the test suites; real platforms plug in behind the same
// contract.
package memory

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"chatmux/contract"
	"chatmux/domain"
	"chatmux/errors"

	"github.com/google/uuid"
)

// The front-end command syntax recognized by this platform. Connect
// streams never carry these; the command worker consumes them instead.
var commandPattern = regexp.MustCompile(`^\s*(\+link(raw)?|-link|~links)\b`)

var channelMention = regexp.MustCompile(`^#([A-Za-z0-9_-]+)$`)
var channelID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

const kickDuration = 5 * time.Minute

// maxAuthorTag mirrors the tightest display-name limit among the real
// platforms; longer tags degrade to the service initial.
const maxAuthorTag = 32

type storedMessage struct {
	id        string
	author    string
	content   string
	reactions map[string]map[string]struct{} // marker -> user ids
}

type channel struct {
	id          string
	name        string
	subscribers []chan domain.ChatMessage
	watchers    map[string][]*reactionWatch // message id -> watches
	messages    map[string]*storedMessage
	order       []string
	members     []domain.Member
	listing     []domain.Channel
	emotes      []domain.Emote
	mutedUntil  map[string]time.Time
	banned      map[string]struct{}
}

type reactionWatch struct {
	ch   chan domain.Reaction
	stop func()
}

// Service is one in-memory platform instance.
type Service struct {
	name     string
	identity string

	mu       sync.Mutex
	channels map[string]*channel
	seq      int64
	commands chan domain.ChatMessage
}

var _ contract.Source = (*Service)(nil)

func NewService(name, identity string) *Service {
	return &Service{
		name:     name,
		identity: identity,
		channels: make(map[string]*channel),
		commands: make(chan domain.ChatMessage, 16),
	}
}

func (s *Service) Identity() string { return s.identity }

// AddChannel creates a channel and registers it in the directory listing
// of every channel on this service.
func (s *Service) AddChannel(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.channels[id]; ok {
		return
	}
	s.channels[id] = &channel{
		id:         id,
		name:       name,
		watchers:   make(map[string][]*reactionWatch),
		messages:   make(map[string]*storedMessage),
		mutedUntil: make(map[string]time.Time),
		banned:     make(map[string]struct{}),
	}
	listing := domain.Channel{Name: name, Mention: "#" + name}
	for _, c := range s.channels {
		c.listing = append(c.listing, listing)
	}
}

// SetMembers replaces the member directory of a channel.
func (s *Service) SetMembers(channelID string, members ...domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.channels[channelID]; ok {
		c.members = members
	}
}

// SetEmotes replaces the custom emote directory of a channel.
func (s *Service) SetEmotes(channelID string, emotes ...domain.Emote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.channels[channelID]; ok {
		c.emotes = emotes
	}
}

func (s *Service) Connect(_ context.Context, chanID string) (<-chan domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[chanID]
	if !ok {
		return nil, fmt.Errorf("%w: channel %q on %s", errors.ErrInvalidReference, chanID, s.name)
	}
	stream := make(chan domain.ChatMessage, 64)
	c.subscribers = append(c.subscribers, stream)
	return stream, nil
}

// Post injects a user-authored message, as if typed on this platform.
// Messages from the relay's own identity, recognized command syntax, and
// muted or banned authors never reach Connect streams.
func (s *Service) Post(chanID, author, content string) (domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[chanID]
	if !ok {
		return domain.ChatMessage{}, fmt.Errorf("%w: channel %q on %s", errors.ErrInvalidReference, chanID, s.name)
	}
	if _, banned := c.banned[author]; banned {
		return domain.ChatMessage{}, nil
	}
	if until, muted := c.mutedUntil[author]; muted && time.Now().Before(until) {
		return domain.ChatMessage{}, nil
	}

	stored := s.storeLocked(c, author, content)
	msg := domain.ChatMessage{
		ID:        uuid.New(),
		Service:   s.name,
		Channel:   c.name,
		ChannelID: c.id,
		User:      author,
		Content:   content,
		Actions:   &actions{svc: s, channelID: c.id, messageID: stored.id, author: author},
	}

	if author == s.identity {
		return msg, nil
	}
	if commandPattern.MatchString(content) {
		select {
		case s.commands <- msg:
		default:
		}
		return msg, nil
	}
	for _, sub := range c.subscribers {
		select {
		case sub <- msg:
		default:
			// Slow consumer; the platform does not buffer forever.
		}
	}
	return msg, nil
}

func (s *Service) storeLocked(c *channel, author, content string) *storedMessage {
	s.seq++
	stored := &storedMessage{
		id:        strconv.FormatInt(s.seq, 10),
		author:    author,
		content:   content,
		reactions: make(map[string]map[string]struct{}),
	}
	c.messages[stored.id] = stored
	c.order = append(c.order, stored.id)
	return stored
}

// Commands streams messages recognized as command syntax. Commands are
// withheld from Connect streams so they never relay.
func (s *Service) Commands() <-chan domain.ChatMessage {
	return s.commands
}

// Reply posts content to a channel under the relay's own identity.
func (s *Service) Reply(chanID, content string) {
	_, _ = s.Post(chanID, s.identity, content)
}

func (s *Service) Send(_ context.Context, chanID string, m domain.ChatMessage, _ bool) (contract.MessageHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[chanID]
	if !ok {
		return nil, fmt.Errorf("%w: channel %q on %s", errors.ErrAdapterSendFailure, chanID, s.name)
	}
	stored := s.storeLocked(c, authorTag(m), m.Content)
	return &handle{svc: s, channelID: c.id, messageID: stored.id}, nil
}

// authorTag renders the relayed author as "user (service/channel)",
// falling back to the service initial when the tag would not fit.
func authorTag(m domain.ChatMessage) string {
	tag := fmt.Sprintf("%s (%s/%s)", m.User, m.Service, m.Channel)
	if len(tag) > maxAuthorTag && m.Service != "" {
		initial := strings.ToUpper(m.Service[:1])
		tag = fmt.Sprintf("%s (%s/%s)", m.User, initial, m.Channel)
	}
	return tag
}

func (s *Service) ParseChannelRef(text string) (string, error) {
	if match := channelMention.FindStringSubmatch(text); match != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, c := range s.channels {
			if c.name == match[1] {
				return c.id, nil
			}
		}
		return "", fmt.Errorf("%w: unknown channel %q on %s", errors.ErrInvalidReference, text, s.name)
	}
	if channelID.MatchString(text) {
		return text, nil
	}
	return "", fmt.Errorf("%w: %q must be a channel id or #mention", errors.ErrInvalidReference, text)
}

func (s *Service) PrettifyChannelRef(chanID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.channels[chanID]; ok {
		return "#" + c.name
	}
	return chanID
}

func (s *Service) Directory(chanID string) contract.Directory {
	return &directory{svc: s, channelID: chanID}
}

func (s *Service) WatchReactions(ctx context.Context, chanID, messageID string) (<-chan domain.Reaction, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[chanID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: channel %q on %s", errors.ErrInvalidReference, chanID, s.name)
	}

	watch := &reactionWatch{ch: make(chan domain.Reaction, 8)}
	var once sync.Once
	watch.stop = func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			watches := c.watchers[messageID]
			for i, w := range watches {
				if w == watch {
					c.watchers[messageID] = append(watches[:i], watches[i+1:]...)
					break
				}
			}
			close(watch.ch)
		})
	}
	c.watchers[messageID] = append(c.watchers[messageID], watch)
	go func() {
		<-ctx.Done()
		watch.stop()
	}()
	return watch.ch, watch.stop, nil
}

// React records a user reaction and notifies watchers.
func (s *Service) React(chanID, messageID, userID, marker string) {
	s.mu.Lock()
	c, ok := s.channels[chanID]
	if !ok {
		s.mu.Unlock()
		return
	}
	stored, ok := c.messages[messageID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if stored.reactions[marker] == nil {
		stored.reactions[marker] = make(map[string]struct{})
	}
	stored.reactions[marker][userID] = struct{}{}
	watches := append([]*reactionWatch(nil), c.watchers[messageID]...)
	s.mu.Unlock()

	reaction := domain.Reaction{MessageID: messageID, UserID: userID, Marker: marker}
	for _, w := range watches {
		select {
		case w.ch <- reaction:
		default:
		}
	}
}

// Messages returns the channel's surviving message contents in order.
func (s *Service) Messages(chanID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[chanID]
	if !ok {
		return nil
	}
	var out []string
	for _, id := range c.order {
		if m, alive := c.messages[id]; alive {
			out = append(out, m.content)
		}
	}
	return out
}

// Authors returns the display author of each surviving message in order.
func (s *Service) Authors(chanID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[chanID]
	if !ok {
		return nil
	}
	var out []string
	for _, id := range c.order {
		if m, alive := c.messages[id]; alive {
			out = append(out, m.author)
		}
	}
	return out
}

// MessageIDs returns the ids of the channel's surviving messages in order.
func (s *Service) MessageIDs(chanID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[chanID]
	if !ok {
		return nil
	}
	var out []string
	for _, id := range c.order {
		if _, alive := c.messages[id]; alive {
			out = append(out, id)
		}
	}
	return out
}

// HasMessage reports whether a message created by Send or Post still exists.
func (s *Service) HasMessage(chanID, messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[chanID]
	if !ok {
		return false
	}
	_, alive := c.messages[messageID]
	return alive
}

// ReactionMarkers lists the markers currently attached to a message.
func (s *Service) ReactionMarkers(chanID, messageID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[chanID]
	if !ok {
		return nil
	}
	stored, ok := c.messages[messageID]
	if !ok {
		return nil
	}
	var markers []string
	for marker, users := range stored.reactions {
		if len(users) > 0 {
			markers = append(markers, marker)
		}
	}
	return markers
}

// IsBanned reports whether a user is banned from a channel.
func (s *Service) IsBanned(chanID, user string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[chanID]
	if !ok {
		return false
	}
	_, banned := c.banned[user]
	return banned
}

// IsMuted reports whether a user is currently muted in a channel.
func (s *Service) IsMuted(chanID, user string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.channels[chanID]
	if !ok {
		return false
	}
	until, muted := c.mutedUntil[user]
	return muted && time.Now().Before(until)
}
