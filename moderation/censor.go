package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Censor masks blacklisted words in relayed content. Matching runs on a
// normalized view of the text (lowercased, leet speak folded, noise
// stripped) while the replacement is applied to the original runes, so
// spacing and punctuation survive.
type Censor struct {
	matcher     *goahocorasick.Machine
	maskingChar rune
}

type textMapping struct {
	normalized []rune
	origIdx    []int
}

// NewCensor builds the Aho-Corasick automaton over the normalized word
// list.
func NewCensor(words []string, maskingChar rune) (*Censor, error) {
	patterns := make([][]rune, len(words))
	for i, word := range words {
		patterns[i] = normalizeRunes([]rune(word))
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Censor{matcher: m, maskingChar: maskingChar}, nil
}

// Apply returns the content with every blacklisted span masked, and
// whether anything was masked at all.
func (c *Censor) Apply(original string) (string, bool) {
	mapping := normalize(original)
	if len(mapping.normalized) == 0 {
		return original, false
	}

	spans := c.matcher.MultiPatternSearch(mapping.normalized, false)
	if len(spans) == 0 {
		return original, false
	}

	origRunes := []rune(original)
	for _, span := range spans {
		normStart := span.Pos
		normEnd := normStart + len(span.Word)
		if normStart < 0 || normEnd > len(mapping.origIdx) {
			continue
		}
		origStart := mapping.origIdx[normStart]
		origEnd := mapping.origIdx[normEnd-1] + 1
		for i := origStart; i < origEnd; i++ {
			origRunes[i] = c.maskingChar
		}
	}
	return string(origRunes), true
}

// normalize lowers, folds and strips the input while remembering where
// every kept rune came from.
func normalize(input string) textMapping {
	origRunes := []rune(input)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		clean := foldLeet(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, unicode.ToLower(clean))
		origIdx = append(origIdx, i)
	}
	return textMapping{normalized: norm, origIdx: origIdx}
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := foldLeet(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// foldLeet maps common leet speak characters back to their standard
// alphabet counterparts.
func foldLeet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// isNoise identifies characters ignored during pattern matching.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
