package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "disabled preview", input: "Senior Go engineer", limit: 0, want: ""},
		{name: "short job title", input: "Senior Go engineer", limit: 50, want: "Senior Go engineer"},
		{name: "resume lines are flattened", input: "Jane Doe\n\n  Backend\tdeveloper\n", limit: 50, want: "Jane Doe Backend developer"},
		{name: "long prompt is cut", input: `["manage","databases","build"]`, limit: 12, want: `["manage","d...`},
		{name: "cut counts runes", input: "résumé café", limit: 6, want: "résumé..."},
		{name: "exact length is kept", input: "kafka", limit: 5, want: "kafka"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
