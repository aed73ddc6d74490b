// Command nn-inference evaluates a feed-forward network described by a JSON
// topology file.
//
// To evaluate one input: `go run ./cmd/nn-inference infer --topology=net.json --input=3,1`
//
// To evaluate the rows of a NumPy file: `go run ./cmd/nn-inference infer --topology=net.json --inputs=x.npy --output=y.npy`
//
// To sweep a line of inputs: `go run ./cmd/nn-inference sweep --topology=net.json --activation=double --pattern=2,-1,-3`
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ahmedtd/ffnet/toolbox"
	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&InferCommand{}, "")
	subcommands.Register(&SweepCommand{}, "")
	subcommands.Register(&DescribeCommand{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

// networkFlags are shared by every command that builds a network.
type networkFlags struct {
	topologyFile string
	activation   string

	workers            int
	minParallelNeurons int
}

func (nf *networkFlags) register(f *flag.FlagSet) {
	f.StringVar(&nf.topologyFile, "topology", "neuralnetwork-layers.json", "Path to the JSON topology file")
	f.StringVar(&nf.activation, "activation", "softsign", "Activation function: softsign, sigmoid, relu, linear, or double")
	f.IntVar(&nf.workers, "workers", 1, "Number of goroutines used to evaluate the neurons of a layer")
	f.IntVar(&nf.minParallelNeurons, "min-parallel-neurons", 64, "Layers with fewer neurons than this are evaluated on one goroutine")
}

func (nf *networkFlags) loadNetwork() (*toolbox.Network, error) {
	act, err := toolbox.ActivationByName(nf.activation)
	if err != nil {
		return nil, fmt.Errorf("while selecting activation: %w", err)
	}

	f, err := os.Open(nf.topologyFile)
	if err != nil {
		return nil, fmt.Errorf("while opening topology file: %w", err)
	}
	defer f.Close()

	b, err := toolbox.NewNetworkBuilder().ParseJSONReader(f)
	if err != nil {
		return nil, fmt.Errorf("while parsing topology file %s: %w", nf.topologyFile, err)
	}

	b = b.WithActivation(act)
	if nf.workers > 1 {
		b = b.WithParallelism(toolbox.ParallelConfig{
			Enabled:    true,
			NumWorkers: nf.workers,
			MinNeurons: nf.minParallelNeurons,
		})
	}

	net, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("while building network: %w", err)
	}

	return net, nil
}

// parseVector parses a comma-separated list of numbers such as "3,1,-2.5".
func parseVector(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float32{}, nil
	}

	fields := strings.Split(s, ",")
	v := make([]float32, len(fields))
	for i, field := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
		if err != nil {
			return nil, fmt.Errorf("while parsing element %d: %w", i, err)
		}
		v[i] = float32(x)
	}
	return v, nil
}
