// Package translate rewrites platform-neutral references in free text
// into the destination's native form. Translation is a pure function of
// the content and a directory snapshot fetched at call time; no state
// survives between calls.
package translate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"chatmux/contract"
	"chatmux/domain"
	"chatmux/errors"

	"github.com/kyokomi/emoji/v2"
	"github.com/samber/lo"
)

// Neutral token syntax. A mention preceded by a backslash is escaped and
// never rewritten.
var (
	mentionPattern = regexp.MustCompile(`(^|[^\\])@(\S+)`)
	channelPattern = regexp.MustCompile(`(^|[^\\])#(\S+)`)
	emotePattern   = regexp.MustCompile(`(^|[^\\]):(\S+):`)
)

// Translate rewrites mentions, then channel references, then emotes, in
// that fixed order so later passes never re-interpret substituted text.
// Tokens that resolve nowhere are left verbatim. When a directory fetch
// fails the pass is skipped and the error reported; the content returned
// is still valid for relaying.
func Translate(ctx context.Context, content string, dir contract.Directory) (string, error) {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%w: %v", errors.ErrDirectoryUnavailable, err)
		}
	}

	out, err := replacePass(content, mentionPattern, func(found map[string]struct{}) (map[string]string, error) {
		members, err := dir.Members(ctx)
		if err != nil {
			return nil, err
		}
		return memberTable(members, found), nil
	})
	keep(err)

	out, err = replacePass(out, channelPattern, func(found map[string]struct{}) (map[string]string, error) {
		channels, err := dir.Channels(ctx)
		if err != nil {
			return nil, err
		}
		table := make(map[string]string)
		for _, c := range channels {
			insert(table, c.Name, c.Mention, found)
		}
		return table, nil
	})
	keep(err)

	out, err = replacePass(out, emotePattern, func(found map[string]struct{}) (map[string]string, error) {
		emotes, err := dir.Emotes(ctx)
		if err != nil {
			// Custom emotes are gone but the neutral shorthand can still
			// degrade to plain unicode.
			emotes = nil
		}
		table := make(map[string]string)
		for _, e := range emotes {
			insert(table, e.Name, e.Native, found)
		}
		for name := range found {
			if _, ok := table[name]; ok {
				continue
			}
			if native, ok := emoji.CodeMap()[":"+name+":"]; ok {
				table[name] = native
			}
		}
		return table, err
	})
	keep(err)

	return out, firstErr
}

func memberTable(members []domain.Member, found map[string]struct{}) map[string]string {
	table := make(map[string]string)
	for _, m := range members {
		for _, name := range m.Names {
			insert(table, name, m.Mention, found)
		}
	}
	return table
}

// insert records a resolution, keeping the first entry when two names
// collide under case folding. Listing order is authoritative.
func insert(table map[string]string, name, native string, found map[string]struct{}) {
	key := strings.ToLower(name)
	if _, wanted := found[key]; !wanted {
		return
	}
	if _, taken := table[key]; taken {
		return
	}
	table[key] = native
}

type resolver func(found map[string]struct{}) (map[string]string, error)

// replacePass scans for one token kind, resolves the distinct names it
// found, and substitutes every occurrence whose name resolved. The
// directory is only consulted when the content actually carries tokens.
func replacePass(content string, pattern *regexp.Regexp, resolve resolver) (string, error) {
	matches := pattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil
	}

	found := lo.SliceToMap(matches, func(m []int) (string, struct{}) {
		return strings.ToLower(content[m[4]:m[5]]), struct{}{}
	})

	// A resolver may return a partial table together with an error; what
	// resolved still substitutes.
	table, err := resolve(found)
	if len(table) == 0 {
		return content, err
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		name := strings.ToLower(content[m[4]:m[5]])
		native, ok := table[name]
		if !ok {
			continue
		}
		sb.WriteString(content[last:m[0]])
		// Keep the character the pattern consumed in front of the token.
		sb.WriteString(content[m[2]:m[3]])
		sb.WriteString(native)
		last = m[1]
	}
	sb.WriteString(content[last:])
	return sb.String(), err
}
