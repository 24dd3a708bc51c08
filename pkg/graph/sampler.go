package graph

import (
	"math/rand/v2"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Upper bound on the number of probabilities cached by the walkers of a run
const maxCachedWeights = 1 << 22

// cdf is the cumulative distribution of a weight vector.
// The last element is the total weight.
type cdf []float64

func newCDF(weights []float64) cdf {
	c := make(cdf, len(weights))
	total := 0.0
	for i, w := range weights {
		total += w
		c[i] = total
	}
	return c
}

// pick maps u in [0, 1) to an index, each index being returned with
// probability proportional to its weight
func (c cdf) pick(u float64) int {
	target := u * c[len(c)-1]
	i := sort.Search(len(c), func(i int) bool { return c[i] > target })
	// Rounding on the total can leave target past the last bucket
	if i == len(c) {
		i = len(c) - 1
	}
	return i
}

// walker is a random surfer over a graph.
// It is not safe for concurrent use: every goroutine owns its walker.
type walker struct {
	g       *Graph
	c       float64
	rng     *rand.Rand
	cache   *lru.Cache[int, cdf]
	scratch []float64
}

// newWalker caches at most weights probabilities
func newWalker(g *Graph, c float64, rng *rand.Rand, weights int) *walker {
	size := weights / len(g.nodes)
	if size < 1 {
		size = 1
	}
	// lru.New only fails on a non positive size
	cache, _ := lru.New[int, cdf](size)
	return &walker{
		g:       g,
		c:       c,
		rng:     rng,
		cache:   cache,
		scratch: make([]float64, len(g.nodes)),
	}
}

// next draws the page visited after u
func (w *walker) next(u int) int {
	c, ok := w.cache.Get(u)
	if !ok {
		c = newCDF(w.g.transitionVector(u, w.c, w.scratch))
		w.cache.Add(u, c)
	}
	return c.pick(w.rng.Float64())
}

// walk visits samples pages starting from a uniformly chosen one and adds
// the visits to counts
func (w *walker) walk(samples int, counts []int) {
	u := w.rng.IntN(len(w.g.nodes))
	counts[u]++
	for i := 1; i < samples; i++ {
		u = w.next(u)
		counts[u]++
	}
}
