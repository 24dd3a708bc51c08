package graph

import (
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// ParseFormat maps an output name (dot, svg, png, jpg) to a graphviz format
func ParseFormat(name string) (graphviz.Format, error) {
	switch name {
	case "dot", "":
		return graphviz.DOT, nil
	case "svg":
		return graphviz.SVG, nil
	case "png":
		return graphviz.PNG, nil
	case "jpg":
		return graphviz.JPG, nil
	}
	return "", fmt.Errorf("unsupported render format %q", name)
}

// Render draws the link graph, every page labelled with its rank
func Render(g *Graph, ranks Ranks, format graphviz.Format, w io.Writer) error {
	if err := checkGraph(g); err != nil {
		return err
	}
	gv := graphviz.New()
	defer gv.Close()
	out, err := gv.Graph()
	if err != nil {
		return err
	}
	defer out.Close()

	nodes := make([]*cgraph.Node, g.Len())
	for u, id := range g.nodes {
		node, err := out.CreateNode(id)
		if err != nil {
			return fmt.Errorf("could not create node %s: %w", id, err)
		}
		if rank, ok := ranks[id]; ok {
			node.SetLabel(fmt.Sprintf("%s\n%.4f", id, rank))
		}
		nodes[u] = node
	}
	for u, outLinks := range g.outLinks {
		for _, v := range outLinks {
			name := fmt.Sprintf("%s->%s", g.nodes[u], g.nodes[v])
			if _, err := out.CreateEdge(name, nodes[u], nodes[v]); err != nil {
				return fmt.Errorf("could not create edge %s: %w", name, err)
			}
		}
	}
	return gv.Render(out, format, w)
}
