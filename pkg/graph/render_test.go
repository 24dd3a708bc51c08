package graph

import (
	"bytes"
	"testing"

	"github.com/goccy/go-graphviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDOT(t *testing.T) {
	g, err := New(map[string][]string{"a": {"b"}, "b": {"a", "c"}, "c": nil})
	require.NoError(t, err)
	ranks, err := IterateRank(g, 0.85)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(g, ranks, graphviz.DOT, &buf))
	out := buf.String()
	assert.NotContains(t, out, "_draw_")
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "a -> b")
	assert.Contains(t, out, "b -> c")
	assert.NotContains(t, out, "c -> ")
}

func TestParseFormat(t *testing.T) {
	for name, expected := range map[string]graphviz.Format{
		"":    graphviz.DOT,
		"dot": graphviz.DOT,
		"svg": graphviz.SVG,
		"png": graphviz.PNG,
		"jpg": graphviz.JPG,
	} {
		format, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, expected, format)
	}
	_, err := ParseFormat("gif")
	assert.Error(t, err)
}
