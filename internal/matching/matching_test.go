package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/resume-matcher/internal/keywords"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	kw := keywords.NewSet("manage", "databases", "build", "apis")
	matched, missing := Match(kw, []string{"build", "apis", "daily"})

	assert.Equal(t, []string{"apis", "build"}, matched.Slice())
	assert.Equal(t, []string{"databases", "manage"}, missing.Slice())
}

func TestMatchEmptyKeywords(t *testing.T) {
	t.Parallel()

	matched, missing := Match(keywords.NewSet(), []string{"go", "rust"})

	assert.Equal(t, 0, matched.Len())
	assert.Equal(t, 0, missing.Len())
	assert.NotNil(t, matched)
	assert.NotNil(t, missing)
}

func TestMatchPartition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kw     []string
		tokens []string
	}{
		{kw: nil, tokens: nil},
		{kw: []string{"go"}, tokens: nil},
		{kw: []string{"go", "sql"}, tokens: []string{"go", "go", "sql"}},
		{kw: []string{"go", "sql", "java"}, tokens: []string{"python"}},
	}

	for _, tc := range cases {
		kw := keywords.NewSet(tc.kw...)
		matched, missing := Match(kw, tc.tokens)

		assert.Equal(t, kw.Len(), matched.Len()+missing.Len())
		for k := range matched {
			assert.True(t, kw.Has(k))
			assert.False(t, missing.Has(k), "%q in both sets", k)
		}
		for k := range missing {
			assert.True(t, kw.Has(k))
		}
	}
}

func TestMatchPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		matched, total int
		want           float64
	}{
		{3, 10, 30.0},
		{0, 5, 0.0},
		{5, 5, 100.0},
		{2, 4, 50.0},
		{1, 3, 100.0 / 3.0},
		{0, 0, 0.0},
		{4, 0, 0.0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchPercent(tt.matched, tt.total), "(%d, %d)", tt.matched, tt.total)
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	tokens := []string{"manage", "databases", "build", "apis", "apis", "apis"}
	f := Count(tokens)

	assert.Equal(t, Frequencies{"apis": 3, "manage": 1, "databases": 1, "build": 1}, f)
	assert.Equal(t, len(tokens), f.Total())
	assert.Equal(t, 0, f.Get("daily"))
	assert.Equal(t, 0, Count(nil).Total())
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	kw := keywords.NewSet("manage", "databases", "build", "apis")
	got := Evaluate("resume1.txt", []string{"build", "apis", "daily"}, kw)

	assert.Equal(t, "resume1.txt", got.Label)
	assert.Equal(t, 50.0, got.Result.Percent)
	assert.Equal(t, []string{"apis", "build"}, got.Result.Matched.Slice())
	assert.Equal(t, []string{"databases", "manage"}, got.Result.Missing.Slice())
	assert.Equal(t, Frequencies{"build": 1, "apis": 1, "daily": 1}, got.Frequencies)
}
