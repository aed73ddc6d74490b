package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ahmedtd/ffnet/toolbox"
	"github.com/google/subcommands"
)

// SweepCommand evaluates the network along the line f*pattern for
// f = 0, 1, 2, ... and prints the first output for each step.
type SweepCommand struct {
	network networkFlags

	pattern string
	steps   int
}

var _ subcommands.Command = (*SweepCommand)(nil)

func (*SweepCommand) Name() string {
	return "sweep"
}

func (*SweepCommand) Synopsis() string {
	return "Evaluate the network along a line of inputs"
}

func (*SweepCommand) Usage() string {
	return `sweep --topology=<file> --pattern=<a,b,...> [--steps=<n>]
`
}

func (c *SweepCommand) SetFlags(f *flag.FlagSet) {
	c.network.register(f)
	f.StringVar(&c.pattern, "pattern", "2,-1,-3", "Comma-separated direction; step f evaluates f times this vector")
	f.IntVar(&c.steps, "steps", 10, "Number of steps to evaluate; negative runs until interrupted")
}

func (c *SweepCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.executeErr(ctx); err != nil {
		log.Printf("Error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *SweepCommand) executeErr(ctx context.Context) error {
	pattern, err := parseVector(c.pattern)
	if err != nil {
		return fmt.Errorf("while parsing --pattern: %w", err)
	}

	net, err := c.network.loadNetwork()
	if err != nil {
		return err
	}

	return sweep(ctx, os.Stdout, net, pattern, c.steps)
}

func sweep(ctx context.Context, w io.Writer, net *toolbox.Network, pattern []float32, steps int) error {
	input := make([]float32, len(pattern))
	for f := 0; steps < 0 || f < steps; f++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		for i := 0; i < len(pattern); i++ {
			input[i] = float32(f) * pattern[i]
		}

		output, err := net.Calc(input)
		if err != nil {
			return fmt.Errorf("while evaluating step %d: %w", f, err)
		}
		if len(output) == 0 {
			return fmt.Errorf("network has no outputs")
		}

		if _, err := fmt.Fprintf(w, "%-30v => %v\n", input, output[0]); err != nil {
			return err
		}
	}
	return nil
}
