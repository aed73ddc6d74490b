package toolbox

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// A topology description is JSON of the form
//
//	[                                  // layers
//	  [                                // neurons of layer 0
//	    {"weights": [1.0, -1.0], "bias": 0.5}
//	  ],
//	  ...
//	]
//
// Shapes are not compared across neurons or layers here; Build does that.

func decodeTopologySource(src string) (any, error) {
	return decodeTopology(strings.NewReader(src))
}

func decodeTopology(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, &TopologyError{Reason: err.Error(), Err: ErrMalformedTopology}
	}

	// Only one value is allowed.
	if _, err := dec.Token(); err != io.EOF {
		return nil, &TopologyError{Reason: "unexpected data after top-level value", Err: ErrMalformedTopology}
	}

	return tree, nil
}

func invalidTopology(path, format string, args ...any) error {
	return &TopologyError{
		Path:   path,
		Reason: fmt.Sprintf(format, args...),
		Err:    ErrInvalidTopology,
	}
}

// parseTopology converts a decoded JSON tree into layers.  It fails on the
// first element that has the wrong type.
func parseTopology(tree any) ([]*Layer, error) {
	jsonLayers, ok := tree.([]any)
	if !ok {
		return nil, invalidTopology("$", "want array of layers, got %s", jsonKind(tree))
	}

	layers := make([]*Layer, 0, len(jsonLayers))
	for l, jsonLayer := range jsonLayers {
		layerPath := fmt.Sprintf("$[%d]", l)

		jsonNeurons, ok := jsonLayer.([]any)
		if !ok {
			return nil, invalidTopology(layerPath, "want array of neurons, got %s", jsonKind(jsonLayer))
		}

		neurons := make([]*Neuron, 0, len(jsonNeurons))
		for i, jsonNeuron := range jsonNeurons {
			n, err := parseNeuron(fmt.Sprintf("%s[%d]", layerPath, i), jsonNeuron)
			if err != nil {
				return nil, err
			}
			neurons = append(neurons, n)
		}

		layers = append(layers, NewLayer(neurons...))
	}

	return layers, nil
}

func parseNeuron(path string, v any) (*Neuron, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, invalidTopology(path, "want neuron object, got %s", jsonKind(v))
	}

	rawWeights, present := obj["weights"]
	if !present {
		return nil, invalidTopology(path+".weights", "missing")
	}
	jsonWeights, ok := rawWeights.([]any)
	if !ok {
		return nil, invalidTopology(path+".weights", "want array of numbers, got %s", jsonKind(rawWeights))
	}

	weights := make([]float32, 0, len(jsonWeights))
	for j, w := range jsonWeights {
		f, ok := jsonNumber(w)
		if !ok {
			return nil, invalidTopology(fmt.Sprintf("%s.weights[%d]", path, j), "want number, got %s", jsonKind(w))
		}
		weights = append(weights, float32(f))
	}

	rawBias, present := obj["bias"]
	if !present {
		return nil, invalidTopology(path+".bias", "missing")
	}
	bias, ok := jsonNumber(rawBias)
	if !ok {
		return nil, invalidTopology(path+".bias", "want number, got %s", jsonKind(rawBias))
	}

	return NewNeuron(weights, float32(bias)), nil
}

// jsonNumber accepts what encoding/json produces for numbers, plus the Go
// numeric types a caller building a tree by hand is likely to use.
func jsonNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		if _, ok := jsonNumber(v); ok {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}
