// Package normalize turns raw document text into an ordered sequence of
// cleaned tokens.
//
// A token is lowercase, contains letters only and is not a stop word.
// ASCII punctuation is deleted rather than treated as a word boundary, so
// "don't" becomes "dont". No stemming or lemmatization is applied.
//
// All functions are pure and safe for concurrent use.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// punctuation is the ASCII punctuation set removed from text before splitting.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalize lowercases raw, deletes punctuation, splits on whitespace and keeps
// the tokens that are alphabetic and not in stop. Order follows the source text.
// Empty or malformed input yields an empty sequence.
func Normalize(raw string, stop StopWords) []string {
	if raw == "" {
		return []string{}
	}

	// Composition runs after deletion: removing punctuation can leave
	// combining sequences adjacent.
	text := strings.Map(dropPunctuation, strings.ToLower(raw))
	text = norm.NFC.String(text)

	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if stop.Has(f) || !isAlpha(f) {
			continue
		}
		tokens = append(tokens, f)
	}

	return tokens
}

// Join re-joins tokens into text that normalizes back to the same tokens.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

func dropPunctuation(r rune) rune {
	if r < unicode.MaxASCII && strings.ContainsRune(punctuation, r) {
		return -1
	}
	return r
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
