package node

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lioia/pagerank/pkg/graph"
	"github.com/lioia/pagerank/pkg/utils"

	gonanoid "github.com/matoous/go-nanoid/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Request is a rank computation: the raw links of every page of the corpus
// and the estimators' parameters. Zero parameters take the default value.
type Request struct {
	Links         map[string][]string `json:"links"`
	DampingFactor float64             `json:"damping,omitempty"`
	Samples       int                 `json:"samples,omitempty"`
	Walkers       int                 `json:"walkers,omitempty"`
	Threshold     float64             `json:"threshold,omitempty"`
}

// Result holds the ranks of both estimators
type Result struct {
	Id       string      `json:"id"`
	Sampled  graph.Ranks `json:"sampled"`
	Iterated graph.Ranks `json:"iterated"`
	Sweeps   int         `json:"sweeps"`
	Distance float64     `json:"distance"` // L1 distance between the two estimates
}

type Node struct {
	Workers int      // Goroutines used by every solver sweep
	Queue   *Queue   // Queue information (nil when no broker is configured)
	Metrics *Metrics // Prometheus collectors
}

type Queue struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Work    *amqp.Queue
	Result  *amqp.Queue
}

func NewNode(workers int) *Node {
	if workers < 1 {
		workers = 1
	}
	return &Node{Workers: workers, Metrics: NewMetrics()}
}

// Zero parameters take the defaults, so a zero sent on purpose is refused
// while decoding, the only place it can be told apart from a missing one.
func rejectZeros(req Request, present func(name string) bool) error {
	for _, p := range []struct {
		name string
		zero bool
	}{
		{"damping", req.DampingFactor == 0},
		{"samples", req.Samples == 0},
		{"walkers", req.Walkers == 0},
		{"threshold", req.Threshold == 0},
	} {
		if p.zero && present(p.name) {
			return fmt.Errorf("%w: %s must not be 0", graph.ErrInvalidParameter, p.name)
		}
	}
	return nil
}

func (r *Request) applyDefaults() {
	if r.DampingFactor == 0 {
		r.DampingFactor = graph.DampingFactor
	}
	if r.Samples == 0 {
		r.Samples = graph.Samples
	}
	if r.Walkers == 0 {
		r.Walkers = 1
	}
	if r.Threshold == 0 {
		r.Threshold = graph.Threshold
	}
}

// Compute builds the link graph of the request and runs both estimators
func (n *Node) Compute(req Request) (Result, error) {
	req.applyDefaults()
	g, err := graph.New(req.Links)
	if err != nil {
		return Result{}, err
	}
	iterated, sweeps, err := graph.Iterate(g, req.DampingFactor, req.Threshold, n.Workers)
	if err != nil {
		return Result{}, err
	}
	var sampled graph.Ranks
	if req.Walkers == 1 {
		sampled, err = graph.SampleRank(g, req.DampingFactor, req.Samples, nil)
	} else {
		sampled, err = graph.SampleRankParallel(g, req.DampingFactor, req.Samples, req.Walkers, rand.Uint64())
	}
	if err != nil {
		return Result{}, err
	}
	id, err := gonanoid.New()
	if err != nil {
		return Result{}, err
	}
	n.Metrics.sweeps.Observe(float64(sweeps))
	utils.NodeLog("node", "Computed %s: %d pages, %d sweeps", id, g.Len(), sweeps)
	return Result{
		Id:       id,
		Sampled:  sampled,
		Iterated: iterated,
		Sweeps:   sweeps,
		Distance: graph.Distance(sampled, iterated),
	}, nil
}

// IsInvalidRequest reports whether err is caused by the request content
func IsInvalidRequest(err error) bool {
	return errors.Is(err, graph.ErrEmptyCorpus) ||
		errors.Is(err, graph.ErrInvalidParameter) ||
		errors.Is(err, errMalformed)
}
