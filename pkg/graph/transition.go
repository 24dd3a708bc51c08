package graph

import "fmt"

// Distribution maps every corpus node to the probability of visiting it next
type Distribution map[string]float64

// With probability 1 - c the surfer jumps to any of the n pages
func teleport(c float64, n int) float64 {
	return (1 - c) / float64(n)
}

// With probability c the surfer follows one of the outDegree links
func follow(c float64, outDegree int) float64 {
	return c / float64(outDegree)
}

// Transition returns the probability distribution of the next page visited
// by a random surfer currently on node.
// A dangling node is treated as linking to every page, itself included.
func Transition(g *Graph, node string, c float64) (Distribution, error) {
	if err := checkGraph(g); err != nil {
		return nil, err
	}
	if err := checkDampingFactor(c); err != nil {
		return nil, err
	}
	u, ok := g.index[node]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, node)
	}
	probabilities := g.transitionVector(u, c, nil)
	distribution := make(Distribution, len(probabilities))
	for v, p := range probabilities {
		distribution[g.nodes[v]] = p
	}
	return distribution, nil
}

// transitionVector writes into dst (allocated when nil) the transition
// probabilities from u, indexed as g.nodes
func (g *Graph) transitionVector(u int, c float64, dst []float64) []float64 {
	n := len(g.nodes)
	if dst == nil {
		dst = make([]float64, n)
	}
	out := g.outLinks[u]
	if len(out) == 0 {
		for v := range dst {
			dst[v] = 1 / float64(n)
		}
		return dst
	}
	base := teleport(c, n)
	for v := range dst {
		dst[v] = base
	}
	p := follow(c, len(out))
	for _, v := range out {
		dst[v] += p
	}
	return dst
}

// Sum of all the probabilities (should be 1)
func (d Distribution) Sum() float64 {
	return sum(d)
}
