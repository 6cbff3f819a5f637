package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/keywords"
	"github.com/spigell/resume-matcher/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
}

//go:embed prompt.md
var systemPrompt string

const (
	defaultMaxLogLength = 200
	defaultBatchSize    = 200
)

// Tagger implements keywords.Tagger by asking Gemini for Penn Treebank tags.
type Tagger struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
	batchSize int
}

// NewTagger builds a tagger on top of generator. Tokens are sent in batches of
// batchSize so long job descriptions stay within a single response.
func NewTagger(generator contentGenerator, logger *zap.Logger, maxLogLength, batchSize int) *Tagger {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Tagger{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
		batchSize: batchSize,
	}
}

// Tag returns one tag per token, in order.
func (t *Tagger) Tag(ctx context.Context, tokens []string) ([]keywords.TaggedToken, error) {
	out := make([]keywords.TaggedToken, 0, len(tokens))
	for start := 0; start < len(tokens); start += t.batchSize {
		end := min(start+t.batchSize, len(tokens))
		tagged, err := t.tagBatch(ctx, tokens[start:end])
		if err != nil {
			return nil, fmt.Errorf("tagging tokens %d-%d: %w", start, end, err)
		}
		out = append(out, tagged...)
	}
	return out, nil
}

func (t *Tagger) tagBatch(ctx context.Context, batch []string) ([]keywords.TaggedToken, error) {
	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("marshal tokens: %w", err)
	}
	prompt := string(payload)

	t.logger.Debug("gemini tagging request",
		zap.Int("tokens", len(batch)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, t.maxLogLen)),
	)

	raw, err := t.generator.GenerateContent(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("gemini tagging response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, t.maxLogLen)),
	)

	tags, err := parseTags(raw)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(batch) {
		return nil, fmt.Errorf("gemini returned %d tags for %d tokens", len(tags), len(batch))
	}

	out := make([]keywords.TaggedToken, len(batch))
	for i, tok := range batch {
		out[i] = keywords.TaggedToken{Token: tok, Tag: tags[i]}
	}
	return out, nil
}

func parseTags(raw string) ([]string, error) {
	cleaned := extractJSON(raw)

	var tags []string
	if err := json.Unmarshal([]byte(cleaned), &tags); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	for i, tag := range tags {
		tags[i] = strings.ToUpper(strings.TrimSpace(tag))
	}
	return tags, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
