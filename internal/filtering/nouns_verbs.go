package filtering

import (
	"context"
	"errors"

	"github.com/spigell/resume-matcher/internal/keywords"
)

const nounsVerbsName = "nouns_verbs"

type nounsVerbsFilter struct {
	enabled bool
	reason  string
}

// NewNounsVerbs creates a step that keeps only tokens tagged as nouns or verbs.
// It switches itself on during Validate when the configured mode asks for it.
func NewNounsVerbs() Filter {
	return &nounsVerbsFilter{enabled: true}
}

func (f *nounsVerbsFilter) Name() string { return nounsVerbsName }

func (f *nounsVerbsFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *nounsVerbsFilter) IsEnabled() bool { return f.enabled }

func (f *nounsVerbsFilter) Validate(cfg *Config, deps Deps) error {
	if cfg == nil || cfg.Mode != keywords.ModeNounsVerbs {
		f.Disable("mode " + string(modeOf(cfg)))
		return nil
	}
	if deps.Tagger == nil {
		return errors.New("part-of-speech tagger is required in nouns_verbs mode")
	}
	return nil
}

func (f *nounsVerbsFilter) Apply(ctx context.Context, deps Deps, tokens []string) ([]string, Step, error) {
	initial := len(tokens)
	if !f.enabled {
		return tokens, Step{Initial: initial, Left: initial}, nil
	}

	kept, err := keywords.RestrictToNounsVerbs(ctx, deps.Tagger, tokens)
	if err != nil {
		return nil, Step{}, err
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *nounsVerbsFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason}
}

func modeOf(cfg *Config) keywords.Mode {
	if cfg == nil || cfg.Mode == "" {
		return keywords.ModeAllWords
	}
	return cfg.Mode
}
