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
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

type InferCommand struct {
	network networkFlags

	input      string
	inputsFile string
	outputFile string
}

var _ subcommands.Command = (*InferCommand)(nil)

func (*InferCommand) Name() string {
	return "infer"
}

func (*InferCommand) Synopsis() string {
	return "Evaluate the network on one input or a batch of inputs"
}

func (*InferCommand) Usage() string {
	return `infer --topology=<file> (--input=<a,b,...> | --inputs=<file.npy>) [--output=<file.npy>]
`
}

func (c *InferCommand) SetFlags(f *flag.FlagSet) {
	c.network.register(f)
	f.StringVar(&c.input, "input", "", "Comma-separated input vector")
	f.StringVar(&c.inputsFile, "inputs", "", "Path to a 2-D .npy file (float32 or float64) with one input per row")
	f.StringVar(&c.outputFile, "output", "", "Path to write the outputs as a 2-D float64 .npy file")
}

func (c *InferCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.executeErr(ctx); err != nil {
		log.Printf("Error: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *InferCommand) executeErr(ctx context.Context) error {
	if (c.input == "") == (c.inputsFile == "") {
		return fmt.Errorf("exactly one of --input and --inputs must be set")
	}

	net, err := c.network.loadNetwork()
	if err != nil {
		return err
	}

	var x *toolbox.Batch
	if c.inputsFile != "" {
		x, err = loadInputs(c.inputsFile)
		if err != nil {
			return fmt.Errorf("while loading inputs: %w", err)
		}
		log.Printf("Loaded %d inputs of size %d", x.Rows(), x.Cols())
	} else {
		v, err := parseVector(c.input)
		if err != nil {
			return fmt.Errorf("while parsing --input: %w", err)
		}
		x = toolbox.BatchFromRows([][]float32{v})
	}

	y, err := net.CalcBatch(x)
	if err != nil {
		return fmt.Errorf("while evaluating network: %w", err)
	}

	if err := printOutputs(os.Stdout, x, y); err != nil {
		return fmt.Errorf("while printing outputs: %w", err)
	}

	if c.outputFile != "" {
		if err := writeOutputs(c.outputFile, y); err != nil {
			return fmt.Errorf("while writing outputs: %w", err)
		}
	}

	return nil
}

func printOutputs(w io.Writer, x, y *toolbox.Batch) error {
	for k := 0; k < x.Rows(); k++ {
		if _, err := fmt.Fprintf(w, "%v => %v\n", x.Row(k), y.Row(k)); err != nil {
			return err
		}
	}
	return nil
}

// loadInputs reads a 2-D .npy file.  A 1-D file is treated as a single
// input.
func loadInputs(path string) (*toolbox.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("while opening inputs file: %w", err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("while reading npy header: %w", err)
	}

	if r.Header.Descr.Fortran {
		return nil, fmt.Errorf("fortran-ordered arrays are not supported")
	}

	shape := r.Header.Descr.Shape
	var rows, cols int
	switch len(shape) {
	case 1:
		rows, cols = 1, shape[0]
	case 2:
		rows, cols = shape[0], shape[1]
	default:
		return nil, fmt.Errorf("unsupported shape %v", shape)
	}

	result := toolbox.MakeBatch(rows, cols)

	switch r.Header.Descr.Type {
	case "<f4":
		var raw []float32
		if err := r.Read(&raw); err != nil {
			return nil, fmt.Errorf("while reading float32 array: %w", err)
		}
		copy(result.V, raw)
	case "<f8":
		var raw []float64
		if err := r.Read(&raw); err != nil {
			return nil, fmt.Errorf("while reading float64 array: %w", err)
		}
		for i := 0; i < len(raw) && i < len(result.V); i++ {
			result.V[i] = float32(raw[i])
		}
	default:
		return nil, fmt.Errorf("unsupported dtype %s", r.Header.Descr.Type)
	}

	return result, nil
}

func writeOutputs(path string, y *toolbox.Batch) error {
	if y.Rows() == 0 || y.Cols() == 0 {
		return fmt.Errorf("cannot write empty output of shape %v", y.Shape)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating output file: %w", err)
	}
	defer f.Close()

	if err := npyio.Write(f, batchToDense(y)); err != nil {
		return fmt.Errorf("while writing npy data: %w", err)
	}

	return f.Close()
}

func batchToDense(b *toolbox.Batch) *mat.Dense {
	data := make([]float64, len(b.V))
	for i := 0; i < len(b.V); i++ {
		data[i] = float64(b.V[i])
	}
	return mat.NewDense(b.Rows(), b.Cols(), data)
}
