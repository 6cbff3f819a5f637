// Package prose tags tokens with the averaged-perceptron model shipped with
// github.com/jdkato/prose.
package prose

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/keywords"
)

// Tagger implements keywords.Tagger with the prose perceptron model.
type Tagger struct {
	logger *zap.Logger
}

// New returns a prose-backed tagger.
func New(logger *zap.Logger) *Tagger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tagger{logger: logger}
}

// Warm loads the tagging model once so the first analysis does not pay for it.
func (t *Tagger) Warm(ctx context.Context) error {
	_, err := t.Tag(ctx, []string{"warm"})
	return err
}

// Tag tags tokens in order. prose tokenizes the joined text itself, so its
// tokens are aligned back onto the input; a word prose splits in several
// pieces takes the tag of its last piece.
func (t *Tagger) Tag(ctx context.Context, tokens []string) ([]keywords.TaggedToken, error) {
	if len(tokens) == 0 {
		return []keywords.TaggedToken{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(
		strings.Join(tokens, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}

	pieces := make([]piece, 0, len(tokens))
	for _, tok := range doc.Tokens() {
		pieces = append(pieces, piece{text: tok.Text, tag: tok.Tag})
	}

	tagged, err := align(tokens, pieces)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("prose tagging completed", zap.Int("tokens", len(tagged)))
	return tagged, nil
}

type piece struct {
	text string
	tag  string
}

func align(tokens []string, pieces []piece) ([]keywords.TaggedToken, error) {
	out := make([]keywords.TaggedToken, 0, len(tokens))
	j := 0
	for _, tok := range tokens {
		var b strings.Builder
		tag := ""
		for j < len(pieces) && b.Len() < len(tok) {
			b.WriteString(pieces[j].text)
			tag = pieces[j].tag
			j++
		}
		if b.String() != tok {
			return nil, fmt.Errorf("cannot align prose token %q with input %q", b.String(), tok)
		}
		out = append(out, keywords.TaggedToken{Token: tok, Tag: tag})
	}
	if j != len(pieces) {
		return nil, fmt.Errorf("prose produced %d unaligned tokens", len(pieces)-j)
	}
	return out, nil
}
