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

type DescribeCommand struct {
	network networkFlags
}

var _ subcommands.Command = (*DescribeCommand)(nil)

func (*DescribeCommand) Name() string {
	return "describe"
}

func (*DescribeCommand) Synopsis() string {
	return "Validate a topology file and print its shape"
}

func (*DescribeCommand) Usage() string {
	return `describe --topology=<file>
`
}

func (c *DescribeCommand) SetFlags(f *flag.FlagSet) {
	c.network.register(f)
}

func (c *DescribeCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.executeErr(ctx); err != nil {
		log.Printf("Error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *DescribeCommand) executeErr(ctx context.Context) error {
	net, err := c.network.loadNetwork()
	if err != nil {
		return err
	}
	return describe(os.Stdout, net)
}

func describe(w io.Writer, net *toolbox.Network) error {
	_, err := fmt.Fprintf(w, "layers=%d input-size=%s output-size=%s layer-sizes=%v\n",
		net.NumLayers(),
		sizeString(net.InputSize()),
		sizeString(net.OutputSize()),
		net.LayerSizes(),
	)
	return err
}

func sizeString(n int) string {
	if n < 0 {
		return "any"
	}
	return fmt.Sprint(n)
}
