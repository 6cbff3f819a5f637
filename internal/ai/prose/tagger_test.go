package prose

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-matcher/internal/keywords"
)

func TestAlign(t *testing.T) {
	t.Parallel()

	got, err := align(
		[]string{"cannot", "deploy", "services"},
		[]piece{{"can", "MD"}, {"not", "RB"}, {"deploy", "VB"}, {"services", "NNS"}},
	)
	require.NoError(t, err)

	assert.Equal(t, []keywords.TaggedToken{
		{Token: "cannot", Tag: "RB"},
		{Token: "deploy", Tag: "VB"},
		{Token: "services", Tag: "NNS"},
	}, got)
}

func TestAlignMismatch(t *testing.T) {
	t.Parallel()

	_, err := align([]string{"go"}, []piece{{"rust", "NN"}})
	require.Error(t, err)

	_, err = align([]string{"go"}, []piece{{"go", "NN"}, {"extra", "NN"}})
	require.Error(t, err)
}

func TestTagEmpty(t *testing.T) {
	t.Parallel()

	got, err := New(nil).Tag(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTagCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Tag(ctx, []string{"go"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestTagKeepsOneTagPerToken(t *testing.T) {
	t.Parallel()

	tokens := []string{"engineers", "build", "reliable", "services"}
	got, err := New(nil).Tag(context.Background(), tokens)
	require.NoError(t, err)
	require.Len(t, got, len(tokens))

	for i, tt := range got {
		assert.Equal(t, tokens[i], tt.Token)
		assert.NotEmpty(t, tt.Tag)
	}
}
