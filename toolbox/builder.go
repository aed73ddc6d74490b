package toolbox

import "io"

// LayerSource is anything NetworkBuilder.Layer accepts: a *Layer, a Neurons
// slice, or a WeightBiasPairs slice.
type LayerSource interface {
	asLayer() *Layer
}

func (l *Layer) asLayer() *Layer {
	return l
}

// Neurons is a bare neuron list usable as a layer.
type Neurons []*Neuron

func (ns Neurons) asLayer() *Layer {
	return NewLayer(ns...)
}

type WeightBias struct {
	Weights []float32
	Bias    float32
}

// WeightBiasPairs describes a layer as one (weights, bias) pair per neuron.
type WeightBiasPairs []WeightBias

func (ps WeightBiasPairs) asLayer() *Layer {
	neurons := make([]*Neuron, len(ps))
	for i, p := range ps {
		neurons[i] = NewNeuron(p.Weights, p.Bias)
	}
	return NewLayer(neurons...)
}

// NetworkBuilder accumulates layers and an activation for a Network.  Its
// methods return the builder so calls can be chained.  A builder is single
// use: any call after Build panics.
type NetworkBuilder struct {
	layers     []*Layer
	activation Activation
	parallel   ParallelConfig

	built bool
}

func NewNetworkBuilder() *NetworkBuilder {
	return &NetworkBuilder{
		layers:     []*Layer{},
		activation: SoftSign{},
	}
}

func (b *NetworkBuilder) checkUsable() {
	if b.built {
		panic("NetworkBuilder used after Build")
	}
}

// Layer appends one layer.
func (b *NetworkBuilder) Layer(src LayerSource) *NetworkBuilder {
	b.checkUsable()
	b.layers = append(b.layers, src.asLayer())
	return b
}

// Layers appends layers in order.
func (b *NetworkBuilder) Layers(layers ...*Layer) *NetworkBuilder {
	b.checkUsable()
	b.layers = append(b.layers, layers...)
	return b
}

// WithActivation replaces the activation.  nil restores SoftSign.
func (b *NetworkBuilder) WithActivation(act Activation) *NetworkBuilder {
	b.checkUsable()
	if act == nil {
		act = SoftSign{}
	}
	b.activation = act
	return b
}

func (b *NetworkBuilder) WithParallelism(cfg ParallelConfig) *NetworkBuilder {
	b.checkUsable()
	b.parallel = cfg
	return b
}

// ParseJSON replaces the accumulated layers with the topology described by
// tree, a value as decoded by encoding/json into an interface{}.  On error
// the builder's layers are left as they were.
func (b *NetworkBuilder) ParseJSON(tree any) (*NetworkBuilder, error) {
	b.checkUsable()
	layers, err := parseTopology(tree)
	if err != nil {
		return b, err
	}
	b.layers = layers
	return b, nil
}

// ParseJSONSource decodes src as JSON and then behaves like ParseJSON.
func (b *NetworkBuilder) ParseJSONSource(src string) (*NetworkBuilder, error) {
	b.checkUsable()
	tree, err := decodeTopologySource(src)
	if err != nil {
		return b, err
	}
	return b.ParseJSON(tree)
}

// ParseJSONReader reads a JSON topology from r and then behaves like
// ParseJSON.
func (b *NetworkBuilder) ParseJSONReader(r io.Reader) (*NetworkBuilder, error) {
	b.checkUsable()
	tree, err := decodeTopology(r)
	if err != nil {
		return b, err
	}
	return b.ParseJSON(tree)
}

// Build validates that consecutive layers fit together and returns the
// Network.  The Network owns a copy of every layer, so later changes to
// layers passed to the builder do not affect it.
func (b *NetworkBuilder) Build() (*Network, error) {
	b.checkUsable()
	b.built = true

	inputSize, err := checkShapes(b.layers)
	if err != nil {
		return nil, err
	}

	layers := make([]*Layer, len(b.layers))
	for l := 0; l < len(b.layers); l++ {
		layers[l] = b.layers[l].clone()
	}

	return &Network{
		layers:     layers,
		activation: b.activation,
		parallel:   b.parallel,
		inputSize:  inputSize,
	}, nil
}

// checkShapes returns the input size the layers accept (-1 for any) or a
// *ShapeError for the first neuron whose fan-in does not fit.
func checkShapes(layers []*Layer) (int, error) {
	inputSize := -1
	if len(layers) > 0 && len(layers[0].Neurons) > 0 {
		inputSize = layers[0].Neurons[0].FanIn()
	}

	for l := 0; l < len(layers); l++ {
		want := inputSize
		if l > 0 {
			want = layers[l-1].Size()
		}
		for i, n := range layers[l].Neurons {
			if n.FanIn() != want {
				return 0, &ShapeError{Layer: l, Neuron: i, Got: n.FanIn(), Want: want}
			}
		}
	}

	return inputSize, nil
}
