package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/lioia/pagerank/pkg/crawl"
	"github.com/lioia/pagerank/pkg/graph"
	"github.com/lioia/pagerank/pkg/utils"
	"github.com/spf13/cobra"
)

var (
	configPath    string
	dampingFlag   float64
	samplesFlag   int
	walkersFlag   int
	workersFlag   int
	thresholdFlag float64
	outputFlag    string
	renderFlag    string
	formatFlag    string
	verboseFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "pagerank [corpus]",
	Short: "Rank the pages of a corpus",
	Long: `Rank the pages of a corpus with a random surfer simulation and with
the iterative PageRank solver.

The corpus is either a directory of .html pages, whose links are read from
their anchors, or an edge list (local file or http URL) with one "from to"
link per line. Without an argument the Graph of the configuration is used.

Examples:
  pagerank corpus0
  pagerank --samples 100000 --walkers 4 corpus1
  pagerank --render graph.svg --format svg edges.txt`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRank,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "configuration file (default config.yaml or config.json when present)")
	rootCmd.Flags().Float64Var(&dampingFlag, "damping", graph.DampingFactor, "damping factor")
	rootCmd.Flags().IntVar(&samplesFlag, "samples", graph.Samples, "pages visited by the random surfers")
	rootCmd.Flags().IntVar(&walkersFlag, "walkers", 1, "independent random surfers")
	rootCmd.Flags().IntVar(&workersFlag, "workers", 1, "goroutines used by every solver sweep")
	rootCmd.Flags().Float64Var(&thresholdFlag, "threshold", graph.Threshold, "largest rank change of a converged sweep")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "write the results to a file instead of stdout")
	rootCmd.Flags().StringVar(&renderFlag, "render", "", "render the link graph with the iterated ranks to a file")
	rootCmd.Flags().StringVar(&formatFlag, "format", "dot", "render format: dot, svg, png or jpg")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "log solver and sampler progress")
}

func runRank(cmd *cobra.Command, args []string) error {
	utils.InitLog(verboseFlag, false)
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		config.Graph = args[0]
	}
	if config.Graph == "" {
		return errors.New("no corpus given")
	}

	links, err := loadLinks(config.Graph)
	if err != nil {
		return err
	}
	g, err := graph.New(links)
	if err != nil {
		return fmt.Errorf("%s: %w", config.Graph, err)
	}

	var sampled graph.Ranks
	if config.Walkers == 1 {
		sampled, err = graph.SampleRank(g, config.C, config.Samples, nil)
	} else {
		sampled, err = graph.SampleRankParallel(g, config.C, config.Samples, config.Walkers, rand.Uint64())
	}
	if err != nil {
		return err
	}
	iterated, sweeps, err := graph.Iterate(g, config.C, config.Threshold, workersFlag)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	out.WriteString(graph.Format(fmt.Sprintf("PageRank Results from Sampling (n = %d)", config.Samples), sampled))
	out.WriteString(graph.Format(fmt.Sprintf("PageRank Results from Iteration (%d sweeps)", sweeps), iterated))
	fmt.Fprintf(&out, "L1 distance: %.4f\n", graph.Distance(sampled, iterated))
	if err := writeOutput(cmd.OutOrStdout(), config.Output, out.Bytes()); err != nil {
		return err
	}

	if renderFlag != "" {
		return render(g, iterated)
	}
	return nil
}

// Defaults, then the configuration file, then the flags set by the user
func loadConfig(cmd *cobra.Command) (utils.Config, error) {
	config, err := utils.LoadConfiguration(configPath)
	if err != nil {
		if configPath != "" || !errors.Is(err, os.ErrNotExist) {
			return config, err
		}
		config = utils.DefaultConfig()
	}
	flags := cmd.Flags()
	if flags.Changed("damping") {
		config.C = dampingFlag
	}
	if flags.Changed("samples") {
		config.Samples = samplesFlag
	}
	if flags.Changed("walkers") {
		config.Walkers = walkersFlag
	}
	if flags.Changed("threshold") {
		config.Threshold = thresholdFlag
	}
	if flags.Changed("output") {
		config.Output = outputFlag
	}
	return config, config.Validate()
}

// A directory is crawled, anything else is read as an edge list
func loadLinks(resource string) (map[string][]string, error) {
	if info, err := os.Stat(resource); err == nil && info.IsDir() {
		return crawl.Directory(resource)
	}
	return graph.LoadGraphResource(resource)
}

func writeOutput(stdout io.Writer, output string, contents []byte) error {
	if output == "" {
		_, err := stdout.Write(contents)
		return err
	}
	return os.WriteFile(output, contents, 0o644)
}

func render(g *graph.Graph, ranks graph.Ranks) error {
	format, err := graph.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	file, err := os.Create(renderFlag)
	if err != nil {
		return err
	}
	defer file.Close()
	return graph.Render(g, ranks, format, file)
}
