package graph

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/lioia/pagerank/pkg/utils"
)

const Samples = 10000

// MaxWalkers bounds the surfers of SampleRankParallel: each one owns a
// goroutine, its visit counts and its transition cache.
const MaxWalkers = 64

// SampleRank estimates PageRank by following a single random surfer for
// samples pages and returning the fraction of visits of each page.
// When rng is nil a randomly seeded source is used.
func SampleRank(g *Graph, c float64, samples int, rng *rand.Rand) (Ranks, error) {
	if err := checkSample(g, c, samples); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	counts := make([]int, g.Len())
	newWalker(g, c, rng, maxCachedWeights).walk(samples, counts)
	return g.frequencies(counts, samples), nil
}

// SampleRankParallel splits samples between walkers independent surfers,
// each one running on its own goroutine with a source derived from seed,
// and merges their visits.
func SampleRankParallel(g *Graph, c float64, samples, walkers int, seed uint64) (Ranks, error) {
	if err := checkSample(g, c, samples); err != nil {
		return nil, err
	}
	if err := checkPositive("walkers", walkers); err != nil {
		return nil, err
	}
	if walkers > MaxWalkers {
		return nil, fmt.Errorf("%w: walkers %d above %d", ErrInvalidParameter, walkers, MaxWalkers)
	}
	if walkers > samples {
		walkers = samples
	}

	counts := make([][]int, walkers)
	var wg sync.WaitGroup
	for i := 0; i < walkers; i++ {
		share := samples / walkers
		if i < samples%walkers {
			share++
		}
		counts[i] = make([]int, g.Len())
		wg.Add(1)
		go func(i, share int) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, uint64(i)))
			newWalker(g, c, rng, maxCachedWeights/walkers).walk(share, counts[i])
		}(i, share)
	}
	wg.Wait()

	total := make([]int, g.Len())
	for _, walk := range counts {
		for u, visits := range walk {
			total[u] += visits
		}
	}
	utils.NodeLog("sampler", "Completed %d samples over %d walkers", samples, walkers)
	return g.frequencies(total, samples), nil
}

func checkSample(g *Graph, c float64, samples int) error {
	if err := checkGraph(g); err != nil {
		return err
	}
	if err := checkDampingFactor(c); err != nil {
		return err
	}
	return checkPositive("samples", samples)
}

func (g *Graph) frequencies(counts []int, samples int) Ranks {
	values := make([]float64, len(counts))
	for u, visits := range counts {
		values[u] = float64(visits) / float64(samples)
	}
	return g.ranks(values)
}
