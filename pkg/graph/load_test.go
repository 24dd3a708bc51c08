package graph

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const edgeList = `# corpus0
1.html 2.html
2.html,1.html
2.html 3.html
// comment
3.html	2.html
3.html 4.html

4.html 2.html
4.html 5.html
`

func TestParseEdgeList(t *testing.T) {
	links, err := ParseEdgeList([]byte(edgeList))
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"1.html": {"2.html"},
		"2.html": {"1.html", "3.html"},
		"3.html": {"2.html", "4.html"},
		"4.html": {"2.html", "5.html"},
		"5.html": nil,
	}, links)

	g, err := New(links)
	require.NoError(t, err)
	assert.True(t, g.IsDangling("5.html"))
}

func TestParseEdgeListCRLF(t *testing.T) {
	links, err := ParseEdgeList([]byte("a b\r\nb a\r\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"a": {"b"}, "b": {"a"}}, links)
}

func TestParseEdgeListErrors(t *testing.T) {
	for _, contents := range []string{"a\n", "a b c\n", "a b\nonly\n"} {
		_, err := ParseEdgeList([]byte(contents))
		assert.Error(t, err, contents)
	}
	_, err := ParseEdgeList([]byte("a b\nonly\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestLoadGraphResourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.txt")
	require.NoError(t, os.WriteFile(path, []byte(edgeList), 0o644))

	links, err := LoadGraphResource(path)
	require.NoError(t, err)
	assert.Len(t, links, 5)

	_, err = LoadGraphResource(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadGraphResourceHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graph.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(edgeList))
	}))
	defer server.Close()

	links, err := LoadGraphResource(server.URL + "/graph.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.html", "3.html"}, links["2.html"])

	_, err = LoadGraphResource(server.URL + "/missing.txt")
	assert.ErrorContains(t, err, "404")
}

func TestFormatAndWrite(t *testing.T) {
	ranks := Ranks{"b.html": 0.25, "a.html": 0.75}
	expected := "PageRank Results from Iteration\n  a.html: 0.7500\n  b.html: 0.2500\n"
	assert.Equal(t, expected, Format("PageRank Results from Iteration", ranks))

	path := filepath.Join(t.TempDir(), "ranks.txt")
	require.NoError(t, Write(path, "PageRank Results from Iteration", ranks))
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected, string(contents))
}
