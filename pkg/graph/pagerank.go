package graph

import (
	"math"
	"sync"

	"github.com/lioia/pagerank/pkg/utils"
	"gonum.org/v1/gonum/floats"
)

const (
	DampingFactor = 0.85
	Threshold     = 1e-4
)

// IterateRank computes PageRank by iterating the PageRank equation until no
// rank changes by more than Threshold in a sweep.
func IterateRank(g *Graph, c float64) (Ranks, error) {
	ranks, _, err := Iterate(g, c, Threshold, 1)
	return ranks, err
}

// Iterate runs the synchronous power iteration
//
//	R_(i + 1)(u) = (1 - c)/N + c * (sum_(v in B_u) R_i(v)/N_v + sum_(v dangling) R_i(v)/N)
//
// until every |R_(i + 1)(u) - R_i(u)| <= threshold, and returns the ranks
// with the number of sweeps. Within a sweep the nodes are split between
// workers goroutines; every sweep only reads the previous one.
func Iterate(g *Graph, c, threshold float64, workers int) (Ranks, int, error) {
	if err := checkGraph(g); err != nil {
		return nil, 0, err
	}
	if err := checkDampingFactor(c); err != nil {
		return nil, 0, err
	}
	if err := checkThreshold(threshold); err != nil {
		return nil, 0, err
	}
	if err := checkPositive("workers", workers); err != nil {
		return nil, 0, err
	}

	s := solver{g: g, c: c, workers: min(workers, g.Len())}
	ranks := make([]float64, g.Len())
	for u := range ranks {
		ranks[u] = 1.0 / float64(g.Len())
	}
	sweeps := 0
	for {
		next, delta := s.sweep(ranks)
		ranks = next
		sweeps++
		if delta <= threshold {
			utils.NodeLog("solver", "Convergence check success (%d sweeps)", sweeps)
			break
		}
		utils.NodeLog("solver", "Convergence check failed (%f)", delta)
	}
	return g.ranks(ranks), sweeps, nil
}

type solver struct {
	g       *Graph
	c       float64
	workers int
}

// sweep computes the ranks following prev into a fresh vector and returns
// it with the largest absolute change
func (s *solver) sweep(prev []float64) ([]float64, float64) {
	n := len(prev)
	// Dangling pages link to every page: their rank is spread evenly
	dangling := 0.0
	for u, out := range s.g.outLinks {
		if len(out) == 0 {
			dangling += prev[u]
		}
	}
	base := teleport(s.c, n) + s.c*dangling/float64(n)

	next := make([]float64, n)
	deltas := make([]float64, s.workers)
	if s.workers == 1 {
		deltas[0] = s.reduce(prev, next, base, 0)
		return next, deltas[0]
	}
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			deltas[w] = s.reduce(prev, next, base, w)
		}(w)
	}
	wg.Wait()
	return next, floats.Max(deltas)
}

// reduce computes the nodes assigned to worker w (round robin) and returns
// the largest change among them
func (s *solver) reduce(prev, next []float64, base float64, w int) float64 {
	delta := 0.0
	for u := w; u < len(prev); u += s.workers {
		// Map phase: sum_(v in B_u) c * R_i(v) / N_v
		sum := 0.0
		for _, v := range s.g.inLinks[u] {
			sum += prev[v] * follow(s.c, len(s.g.outLinks[v]))
		}
		// Reduce phase
		next[u] = base + sum
		delta = math.Max(delta, math.Abs(next[u]-prev[u]))
	}
	return delta
}
