package toolbox

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

var ErrUnknownActivation = errors.New("unknown activation")

// Activation is the scalar transform applied to each neuron's weighted sum
// plus bias.  One Activation is shared by every neuron of a Network, so
// implementations must be safe to call concurrently if the Network is.
type Activation interface {
	Activate(x float32) float32
}

// SoftSign is the builtin activation, x / (1 + |x|).  It maps the reals onto
// (-1, 1) and is the default for a NetworkBuilder.
type SoftSign struct{}

func (SoftSign) Activate(x float32) float32 {
	return x / (1 + math32.Abs(x))
}

// ActivationFunc adapts a caller-supplied function to Activation.  Its result
// is used as the neuron output as-is.
type ActivationFunc func(float32) float32

func (f ActivationFunc) Activate(x float32) float32 {
	return f(x)
}

func sigmoid(z float32) float32 {
	return 1 / (1 + math32.Exp(-z))
}

func relu(z float32) float32 {
	return math32.Max(z, 0)
}

func linear(z float32) float32 {
	return z
}

func double(z float32) float32 {
	return z * 2
}

// ActivationByName resolves the activation names accepted on the command
// line.
func ActivationByName(name string) (Activation, error) {
	switch strings.ToLower(name) {
	case "", "softsign":
		return SoftSign{}, nil
	case "sigmoid":
		return ActivationFunc(sigmoid), nil
	case "relu":
		return ActivationFunc(relu), nil
	case "linear":
		return ActivationFunc(linear), nil
	case "double":
		return ActivationFunc(double), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownActivation, name)
	}
}
