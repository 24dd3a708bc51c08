package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRestrictsLinksToCorpus(t *testing.T) {
	g, err := New(map[string][]string{
		"1.html": {"2.html", "1.html", "missing.html", "2.html"},
		"2.html": {"3.html"},
		"3.html": {},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []string{"1.html", "2.html", "3.html"}, g.Nodes())
	assert.Equal(t, []string{"2.html"}, g.OutLinks("1.html"))
	assert.Equal(t, []string{"3.html"}, g.OutLinks("2.html"))
	assert.Empty(t, g.OutLinks("3.html"))
	assert.Equal(t, []string{"1.html"}, g.InLinks("2.html"))
	assert.Empty(t, g.InLinks("1.html"))

	assert.True(t, g.IsDangling("3.html"))
	assert.False(t, g.IsDangling("1.html"))
	assert.False(t, g.IsDangling("missing.html"))
	assert.False(t, g.Contains("missing.html"))
}

func TestNewEmptyCorpus(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
	_, err = New(map[string][]string{})
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestLinksKeepsEveryNode(t *testing.T) {
	g, err := New(map[string][]string{
		"a": {"b", "c"},
		"b": {"a", "a"},
		"c": nil,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"a": {"b", "c"},
		"b": {"a"},
		"c": {},
	}, g.Links())
}

func TestNewIsOrderIndependent(t *testing.T) {
	first, err := New(map[string][]string{"a": {"c", "b"}, "b": {"c"}, "c": {"a"}})
	require.NoError(t, err)
	second, err := New(map[string][]string{"c": {"a"}, "b": {"c"}, "a": {"b", "c"}})
	require.NoError(t, err)
	assert.Equal(t, first.Links(), second.Links())
}
