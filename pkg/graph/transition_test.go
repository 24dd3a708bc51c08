package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpus0(t *testing.T) *Graph {
	t.Helper()
	g, err := New(map[string][]string{
		"1.html": {"2.html"},
		"2.html": {"1.html", "3.html"},
		"3.html": {"2.html", "4.html"},
		"4.html": {"2.html"},
	})
	require.NoError(t, err)
	return g
}

func TestTransition(t *testing.T) {
	g, err := New(map[string][]string{
		"1.html": {"2.html", "3.html"},
		"2.html": {"3.html"},
		"3.html": {"2.html"},
	})
	require.NoError(t, err)

	d, err := Transition(g, "1.html", 0.85)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, d["1.html"], 1e-12)
	assert.InDelta(t, 0.475, d["2.html"], 1e-12)
	assert.InDelta(t, 0.475, d["3.html"], 1e-12)
	assert.InDelta(t, 1.0, d.Sum(), 1e-12)
}

func TestTransitionDanglingNode(t *testing.T) {
	g, err := New(map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {},
		"d": {"a"},
	})
	require.NoError(t, err)

	d, err := Transition(g, "c", 0.85)
	require.NoError(t, err)
	require.Len(t, d, 4)
	for node, p := range d {
		assert.InDelta(t, 0.25, p, 1e-12, node)
	}
}

func TestTransitionSumsToOne(t *testing.T) {
	g := corpus0(t)
	for _, c := range []float64{0.01, 0.5, 0.85, 0.99} {
		for _, node := range g.Nodes() {
			d, err := Transition(g, node, c)
			require.NoError(t, err)
			assert.Len(t, d, g.Len())
			assert.InDelta(t, 1.0, d.Sum(), 1e-9, "%s with c=%v", node, c)
		}
	}
}

func TestTransitionErrors(t *testing.T) {
	g := corpus0(t)

	_, err := Transition(g, "5.html", 0.85)
	assert.ErrorIs(t, err, ErrUnknownNode)

	for _, c := range []float64{0, 1, -0.5, 1.5} {
		_, err = Transition(g, "1.html", c)
		assert.ErrorIs(t, err, ErrInvalidParameter, "c=%v", c)
	}

	_, err = Transition(nil, "1.html", 0.85)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}
