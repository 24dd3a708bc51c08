package graph

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Ranks maps every corpus node to its estimated PageRank
type Ranks map[string]float64

// Sum of all the ranks (should be 1)
func (r Ranks) Sum() float64 {
	return sum(r)
}

// Sorted returns the ranked pages in lexicographic order
func (r Ranks) Sorted() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Distance computes the L1 distance between two rank maps.
// A page missing from one of the two maps counts as rank 0.
func Distance(a, b Ranks) float64 {
	keys := make(map[string]struct{}, len(a))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	if len(keys) == 0 {
		return 0
	}
	x := make([]float64, 0, len(keys))
	y := make([]float64, 0, len(keys))
	for k := range keys {
		x = append(x, a[k])
		y = append(y, b[k])
	}
	return floats.Distance(x, y, 1)
}

func sum[M ~map[string]float64](m M) float64 {
	values := make([]float64, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	return floats.Sum(values)
}
