package normalize

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// StopWords is a set of lowercase words excluded from token sequences.
type StopWords map[string]struct{}

// NewStopWords builds a set from the given words, lowercasing and trimming each one.
func NewStopWords(words ...string) StopWords {
	s := make(StopWords, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		s[w] = struct{}{}
	}
	return s
}

// Has reports whether word is a stop word. A nil set contains nothing.
func (s StopWords) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Len returns the number of stop words.
func (s StopWords) Len() int { return len(s) }

// Merge returns a new set holding the words of s and other.
func (s StopWords) Merge(other StopWords) StopWords {
	merged := make(StopWords, len(s)+len(other))
	for w := range s {
		merged[w] = struct{}{}
	}
	for w := range other {
		merged[w] = struct{}{}
	}
	return merged
}

// ParseStopWords reads one word per line. Blank lines and lines starting with # are skipped.
func ParseStopWords(r io.Reader) (StopWords, error) {
	words := make([]string, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stop words: %w", err)
	}
	return NewStopWords(words...), nil
}

// DefaultStopWords returns a fresh copy of the curated English function-word list.
func DefaultStopWords() StopWords {
	return NewStopWords(english...)
}

// english holds common English function words: pronouns, determiners,
// auxiliaries, prepositions, conjunctions and frequent adverbs.
var english = []string{
	// Pronouns
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
	"you", "your", "yours", "yourself", "yourselves",
	"he", "him", "his", "himself", "she", "her", "hers", "herself",
	"it", "its", "itself", "they", "them", "their", "theirs", "themselves",
	"what", "which", "who", "whom", "whose", "this", "that", "these", "those",
	// Auxiliaries
	"am", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "having", "do", "does", "did", "doing",
	"will", "would", "shall", "should", "can", "could", "may", "might", "must",
	// Determiners
	"a", "an", "the", "some", "any", "each", "every", "few", "more", "most",
	"other", "such", "no", "nor", "not", "only", "own", "same", "all", "both",
	// Conjunctions
	"and", "but", "if", "or", "because", "as", "until", "while", "than", "so",
	// Prepositions
	"of", "at", "by", "for", "with", "about", "against", "between", "into",
	"through", "during", "before", "after", "above", "below", "to", "from",
	"up", "down", "in", "out", "on", "off", "over", "under", "within", "without",
	"across", "per", "via",
	// Adverbs
	"again", "further", "then", "once", "here", "there", "when", "where",
	"why", "how", "very", "too", "just", "also", "now", "etc",
}
