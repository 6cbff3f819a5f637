// Package ai names the part-of-speech tagger providers.
package ai

import (
	"fmt"
	"strings"
)

// Provider identifies a tagger implementation.
type Provider string

const (
	// ProviderProse is the local averaged-perceptron tagger.
	ProviderProse Provider = "prose"
	// ProviderGemini delegates tagging to the Gemini API.
	ProviderGemini Provider = "gemini"
)

// ParseProvider normalizes a configured provider name. Empty selects ProviderProse.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ProviderProse, nil
	case ProviderProse, ProviderGemini:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported tagger provider: %s", s)
	}
}
