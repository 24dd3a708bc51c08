package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/lioia/pagerank/pkg/graph"
	"github.com/lioia/pagerank/pkg/node"
	"github.com/lioia/pagerank/pkg/utils"
)

var server string   // Connection string of the server
var file string     // Graph file (edge list)
var damping float64 // Damping factor
var samples int     // Random surfer samples
var walkers int     // Random surfers
var timeout time.Duration

func init() {
	flag.StringVar(&server, "server", "127.0.0.1:50051", "gRPC server connection")
	flag.StringVar(&file, "file", "graph.txt", "Graph file or URL")
	flag.Float64Var(&damping, "damping", graph.DampingFactor, "Damping factor")
	flag.IntVar(&samples, "samples", graph.Samples, "Random surfer samples")
	flag.IntVar(&walkers, "walkers", 1, "Independent random surfers")
	flag.DurationVar(&timeout, "timeout", time.Minute, "Request timeout")
}

func main() {
	flag.Parse()

	links, err := graph.LoadGraphResource(file)
	utils.FailOnError("Failed to load graph", err)
	req := node.Request{
		Links:         links,
		DampingFactor: damping,
		Samples:       samples,
		Walkers:       walkers,
	}
	in, err := req.Struct()
	utils.FailOnError("Failed to encode request", err)

	client, err := utils.Call(server, timeout, node.NewRankerClient)
	utils.FailOnError("Failed to create connection to the server", err)
	defer client.Close()
	out, err := client.Client.Rank(client.Ctx, in)
	utils.FailOnError("Server error", err)
	result, err := node.ResultFromStruct(out)
	utils.FailOnError("Failed to decode results", err)

	fmt.Print(graph.Format(fmt.Sprintf("PageRank Results from Sampling (n = %d)", samples), result.Sampled))
	fmt.Print(graph.Format(fmt.Sprintf("PageRank Results from Iteration (%d sweeps)", result.Sweeps), result.Iterated))
	fmt.Printf("L1 distance: %.4f\n", result.Distance)
}
