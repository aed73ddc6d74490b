package toolbox

import (
	"errors"
	"slices"
)

type Neuron struct {
	Weights []float32
	Bias    float32
}

func NewNeuron(weights []float32, bias float32) *Neuron {
	return &Neuron{
		Weights: weights,
		Bias:    bias,
	}
}

// FanIn is the number of inputs the neuron consumes.
func (n *Neuron) FanIn() int {
	return len(n.Weights)
}

// Calc computes act(sum(input[j]*weights[j]) + bias).  The activation is
// called exactly once.
func (n *Neuron) Calc(input []float32, act Activation) (float32, error) {
	if len(input) != len(n.Weights) {
		return 0, &ShapeError{Layer: -1, Neuron: -1, Got: len(input), Want: len(n.Weights)}
	}
	return act.Activate(denseDot(input, n.Weights) + n.Bias), nil
}

func (n *Neuron) clone() *Neuron {
	return &Neuron{
		Weights: slices.Clone(n.Weights),
		Bias:    n.Bias,
	}
}

// Layer is an ordered set of neurons that all read the same input vector.
// Neuron i produces output i.
type Layer struct {
	Neurons []*Neuron
}

func NewLayer(neurons ...*Neuron) *Layer {
	return &Layer{Neurons: neurons}
}

// Size is the number of neurons, and so the length of the layer's output.
func (l *Layer) Size() int {
	return len(l.Neurons)
}

// Calc applies every neuron to input and returns a fresh output vector.
func (l *Layer) Calc(input []float32, act Activation) ([]float32, error) {
	return l.calc(input, act, ParallelConfig{})
}

func (l *Layer) calc(input []float32, act Activation, cfg ParallelConfig) ([]float32, error) {
	out := make([]float32, len(l.Neurons))

	if !cfg.active(len(l.Neurons)) {
		for i, n := range l.Neurons {
			v, err := n.Calc(input, act)
			if err != nil {
				return nil, neuronShapeError(err, i)
			}
			out[i] = v
		}
		return out, nil
	}

	errs := make([]error, len(l.Neurons))
	parallelFor(len(l.Neurons), func(i int) {
		out[i], errs[i] = l.Neurons[i].Calc(input, act)
	}, cfg)
	for i, err := range errs {
		if err != nil {
			return nil, neuronShapeError(err, i)
		}
	}
	return out, nil
}

func neuronShapeError(err error, neuron int) error {
	var se *ShapeError
	if errors.As(err, &se) {
		tagged := *se
		tagged.Neuron = neuron
		return &tagged
	}
	return err
}

func (l *Layer) clone() *Layer {
	neurons := make([]*Neuron, len(l.Neurons))
	for i, n := range l.Neurons {
		neurons[i] = n.clone()
	}
	return &Layer{Neurons: neurons}
}

// Network is an immutable feed-forward network.  Build one with a
// NetworkBuilder.  Calc may be called from multiple goroutines as long as the
// Activation tolerates it.
type Network struct {
	layers     []*Layer
	activation Activation
	parallel   ParallelConfig

	inputSize int
}

func (net *Network) NumLayers() int {
	return len(net.layers)
}

// InputSize is the input length Calc accepts, or -1 if any length is
// accepted.
func (net *Network) InputSize() int {
	return net.inputSize
}

// OutputSize is the length of Calc's result, or -1 for a network with no
// layers (whose output is its input).
func (net *Network) OutputSize() int {
	if len(net.layers) == 0 {
		return -1
	}
	return net.layers[len(net.layers)-1].Size()
}

// LayerSizes returns the number of neurons in each layer.
func (net *Network) LayerSizes() []int {
	sizes := make([]int, len(net.layers))
	for l := 0; l < len(net.layers); l++ {
		sizes[l] = net.layers[l].Size()
	}
	return sizes
}

// Calc runs a forward pass.  A network with no layers returns a copy of
// input.
func (net *Network) Calc(input []float32) ([]float32, error) {
	if net.inputSize >= 0 && len(input) != net.inputSize {
		return nil, &ShapeError{Layer: -1, Neuron: -1, Got: len(input), Want: net.inputSize}
	}

	// The output of the previous layer.
	a := slices.Clone(input)
	if a == nil {
		a = []float32{}
	}

	for l := 0; l < len(net.layers); l++ {
		var err error
		a, err = net.layers[l].calc(a, net.activation, net.parallel)
		if err != nil {
			var se *ShapeError
			if errors.As(err, &se) {
				se.Layer = l
			}
			return nil, err
		}
	}

	return a, nil
}

// CalcBatch runs a forward pass over each row of x.
//
// x is the input.  Shape (batchSize, net.InputSize())
// The result has shape (batchSize, net.OutputSize()).
func (net *Network) CalcBatch(x *Batch) (*Batch, error) {
	batchSize, inputSize := x.Rows(), x.Cols()
	if net.inputSize >= 0 && inputSize != net.inputSize {
		return nil, &ShapeError{Layer: -1, Neuron: -1, Got: inputSize, Want: net.inputSize}
	}

	outputSize := net.OutputSize()
	if outputSize < 0 {
		outputSize = inputSize
	}

	out := MakeBatch(batchSize, outputSize)
	for k := 0; k < batchSize; k++ {
		a, err := net.Calc(x.Row(k))
		if err != nil {
			return nil, err
		}
		copy(out.Row(k), a)
	}

	return out, nil
}
