package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/keywords"
)

type stubGenerator struct {
	responses []string
	err       error
	prompts   []string
	system    string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, prompt string) (string, error) {
	s.system = system
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func TestTaggerTag(t *testing.T) {
	stub := &stubGenerator{responses: []string{"```json\n[\"vbg\", \"JJ\"]\n```"}}
	tagger := NewTagger(stub, zap.NewNop(), 0, 0)

	got, err := tagger.Tag(context.Background(), []string{"running", "fast"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []keywords.TaggedToken{{Token: "running", Tag: "VBG"}, {Token: "fast", Tag: "JJ"}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected tags: %+v", got)
	}

	if !strings.Contains(stub.system, "Penn Treebank") {
		t.Fatalf("expected system prompt to be sent")
	}

	var sent []string
	if err := json.Unmarshal([]byte(stub.prompts[0]), &sent); err != nil {
		t.Fatalf("prompt is not a json array: %v", err)
	}
	if len(sent) != 2 || sent[0] != "running" {
		t.Fatalf("unexpected prompt payload: %v", sent)
	}
}

func TestTaggerBatches(t *testing.T) {
	stub := &stubGenerator{responses: []string{`["NN","NN"]`, `["VB"]`}}
	tagger := NewTagger(stub, zap.NewNop(), 0, 2)

	got, err := tagger.Tag(context.Background(), []string{"go", "kafka", "deploy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stub.prompts) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(stub.prompts))
	}
	if len(got) != 3 || got[2].Token != "deploy" || got[2].Tag != "VB" {
		t.Fatalf("unexpected tags: %+v", got)
	}
}

func TestTaggerLengthMismatch(t *testing.T) {
	stub := &stubGenerator{responses: []string{`["NN"]`}}
	tagger := NewTagger(stub, zap.NewNop(), 0, 0)

	if _, err := tagger.Tag(context.Background(), []string{"go", "kafka"}); err == nil {
		t.Fatal("expected error on tag count mismatch")
	}
}

func TestTaggerInvalidJSON(t *testing.T) {
	stub := &stubGenerator{responses: []string{`not json`}}
	tagger := NewTagger(stub, zap.NewNop(), 0, 0)

	if _, err := tagger.Tag(context.Background(), []string{"go"}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTaggerGeneratorError(t *testing.T) {
	base := errors.New("quota")
	tagger := NewTagger(&stubGenerator{err: base}, zap.NewNop(), 0, 0)

	if _, err := tagger.Tag(context.Background(), []string{"go"}); !errors.Is(err, base) {
		t.Fatalf("expected wrapped generator error, got %v", err)
	}
}

func TestTaggerEmpty(t *testing.T) {
	stub := &stubGenerator{}
	got, err := NewTagger(stub, zap.NewNop(), 0, 0).Tag(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 || len(stub.prompts) != 0 {
		t.Fatalf("expected no calls for empty input")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"```json\n[\"NN\"]\n```": `["NN"]`,
		"```\n[\"NN\"]```":       `["NN"]`,
		"  [\"NN\"]  ":           `["NN"]`,
	}
	for in, want := range cases {
		if got := extractJSON(in); got != want {
			t.Fatalf("extractJSON(%q) = %q, want %q", in, got, want)
		}
	}
}
