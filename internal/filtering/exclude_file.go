package filtering

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/normalize"
)

type excludeFileFilter struct {
	path    string
	exclude normalize.StopWords
}

// NewExcludeFile creates a filter that removes tokens listed in the exclude file
// (one word per line), e.g. the employer's own name.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate(cfg *Config, _ Deps) error {
	f.path = ""
	f.exclude = nil
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	if f.path == "" {
		return nil
	}

	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("opening exclude file: %w", err)
	}
	defer file.Close()

	f.exclude, err = normalize.ParseStopWords(file)
	if err != nil {
		return fmt.Errorf("parsing exclude file %q: %w", f.path, err)
	}

	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, tokens []string) ([]string, Step, error) {
	initial := len(tokens)
	if f.exclude.Len() == 0 {
		return tokens, Step{Initial: initial, Left: initial}, nil
	}

	kept := make([]string, 0, len(tokens))
	var removed []string
	for _, tok := range tokens {
		if f.exclude.Has(tok) {
			removed = append(removed, tok)
			continue
		}
		kept = append(kept, tok)
	}

	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Debug("excluding tokens based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_tokens", removed),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(removed), Left: len(kept)}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
		details["words"] = strconv.Itoa(f.exclude.Len())
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
