package graph

import (
	"slices"
)

// Graph is the link graph of a corpus. Nodes are stored by index in
// lexicographic order; out-links and in-links reference those indexes.
// A Graph is never modified after New returns.
type Graph struct {
	nodes    []string
	index    map[string]int
	outLinks [][]int
	inLinks  [][]int
}

// New builds the link graph from the raw links of every page in the corpus.
// The corpus is the set of keys of links: targets outside of it and self
// links are dropped, repeated targets count once.
func New(links map[string][]string) (*Graph, error) {
	if len(links) == 0 {
		return nil, ErrEmptyCorpus
	}
	g := &Graph{
		nodes: make([]string, 0, len(links)),
		index: make(map[string]int, len(links)),
	}
	for id := range links {
		g.nodes = append(g.nodes, id)
	}
	slices.Sort(g.nodes)
	for i, id := range g.nodes {
		g.index[id] = i
	}

	g.outLinks = make([][]int, len(g.nodes))
	g.inLinks = make([][]int, len(g.nodes))
	for u, id := range g.nodes {
		seen := make(map[int]bool, len(links[id]))
		for _, target := range links[id] {
			v, ok := g.index[target]
			if !ok || v == u || seen[v] {
				continue
			}
			seen[v] = true
			g.outLinks[u] = append(g.outLinks[u], v)
		}
		slices.Sort(g.outLinks[u])
		// u is increasing, so every in-link list stays sorted
		for _, v := range g.outLinks[u] {
			g.inLinks[v] = append(g.inLinks[v], u)
		}
	}
	return g, nil
}

// Len returns the size of the corpus
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns the corpus in lexicographic order
func (g *Graph) Nodes() []string {
	return slices.Clone(g.nodes)
}

func (g *Graph) Contains(node string) bool {
	_, ok := g.index[node]
	return ok
}

// OutLinks returns the pages linked by node (nil for unknown or dangling nodes)
func (g *Graph) OutLinks(node string) []string {
	u, ok := g.index[node]
	if !ok {
		return nil
	}
	return g.names(g.outLinks[u])
}

// InLinks returns the pages linking to node
func (g *Graph) InLinks(node string) []string {
	u, ok := g.index[node]
	if !ok {
		return nil
	}
	return g.names(g.inLinks[u])
}

// IsDangling reports whether node is in the corpus and has no out-links
func (g *Graph) IsDangling(node string) bool {
	u, ok := g.index[node]
	return ok && len(g.outLinks[u]) == 0
}

// Links returns the restricted link mapping: every corpus node is a key
func (g *Graph) Links() map[string][]string {
	links := make(map[string][]string, len(g.nodes))
	for u, id := range g.nodes {
		links[id] = g.names(g.outLinks[u])
		if links[id] == nil {
			links[id] = []string{}
		}
	}
	return links
}

func (g *Graph) names(ids []int) []string {
	if len(ids) == 0 {
		return nil
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = g.nodes[id]
	}
	return names
}

// Converts a rank vector (indexed as g.nodes) into Ranks
func (g *Graph) ranks(values []float64) Ranks {
	ranks := make(Ranks, len(values))
	for i, v := range values {
		ranks[g.nodes[i]] = v
	}
	return ranks
}
