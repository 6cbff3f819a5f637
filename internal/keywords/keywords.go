// Package keywords derives the keyword universe from a job description token
// sequence, optionally restricted to nouns and verbs by a part-of-speech tagger.
package keywords

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Set is an unordered set of tokens.
type Set map[string]struct{}

// NewSet builds a set from tokens.
func NewSet(tokens ...string) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether token is a member.
func (s Set) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int { return len(s) }

// Slice returns the members in ascending order.
func (s Set) Slice() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// Extract deduplicates tokens into a keyword set.
func Extract(tokens []string) Set {
	return NewSet(tokens...)
}

// Mode selects how the keyword universe is built from the job description.
type Mode string

const (
	// ModeAllWords uses every cleaned token as a keyword.
	ModeAllWords Mode = "all_words"
	// ModeNounsVerbs keeps only tokens tagged as nouns or verbs.
	ModeNounsVerbs Mode = "nouns_verbs"
)

// ParseMode accepts the canonical mode names and the menu aliases used by the CLI.
// An empty value selects ModeAllWords.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "all_words", "all-words", "1":
		return ModeAllWords, nil
	case "nouns_verbs", "nouns-verbs", "nouns", "2":
		return ModeNounsVerbs, nil
	default:
		return "", fmt.Errorf("unknown keyword mode %q (want %s or %s)", s, ModeAllWords, ModeNounsVerbs)
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string { return string(m) }

// Description is a short human-readable label for menus and reports.
func (m Mode) Description() string {
	switch m {
	case ModeNounsVerbs:
		return "Only nouns/verbs (recommended)"
	default:
		return "All words (default)"
	}
}

// TaggedToken pairs a token with its Penn Treebank part-of-speech tag.
type TaggedToken struct {
	Token string `json:"token"`
	Tag   string `json:"tag"`
}

// Tagger assigns a part-of-speech tag to every token of an ordered sequence.
// Implementations must return exactly one TaggedToken per input token, in order.
type Tagger interface {
	Tag(ctx context.Context, tokens []string) ([]TaggedToken, error)
}

// nounVerbTags are the Penn Treebank tags retained in ModeNounsVerbs.
var nounVerbTags = map[string]struct{}{
	"NN": {}, "NNS": {}, "NNP": {}, "NNPS": {},
	"VB": {}, "VBD": {}, "VBG": {}, "VBN": {}, "VBP": {}, "VBZ": {},
}

// IsNounOrVerb reports whether tag is one of the retained noun or verb tags.
func IsNounOrVerb(tag string) bool {
	_, ok := nounVerbTags[tag]
	return ok
}

// FilterNounsVerbs keeps the tokens whose tag is a noun or verb tag, preserving order.
func FilterNounsVerbs(tagged []TaggedToken) []string {
	out := make([]string, 0, len(tagged))
	for _, tt := range tagged {
		if IsNounOrVerb(tt.Tag) {
			out = append(out, tt.Token)
		}
	}
	return out
}

// RestrictToNounsVerbs tags the full ordered sequence, then keeps nouns and verbs.
func RestrictToNounsVerbs(ctx context.Context, tagger Tagger, tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return []string{}, nil
	}
	if tagger == nil {
		return nil, fmt.Errorf("part-of-speech tagger is not configured")
	}

	tagged, err := tagger.Tag(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("tagging tokens: %w", err)
	}
	if len(tagged) != len(tokens) {
		return nil, fmt.Errorf("tagger returned %d tags for %d tokens", len(tagged), len(tokens))
	}

	return FilterNounsVerbs(tagged), nil
}
