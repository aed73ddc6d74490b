package toolbox

import (
	"errors"
	"fmt"
)

var (
	// ErrTopology is matched by every topology parsing failure.
	ErrTopology = errors.New("topology")

	ErrMalformedTopology = fmt.Errorf("%w: malformed text", ErrTopology)
	ErrInvalidTopology   = fmt.Errorf("%w: invalid structure", ErrTopology)

	ErrShapeMismatch = errors.New("shape mismatch")
)

// TopologyError reports where in a topology description parsing stopped.
// Path is rooted at "$", e.g. "$[1][0].weights[2]".
type TopologyError struct {
	Path   string
	Reason string
	Err    error
}

func (e *TopologyError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Reason)
	}
	return fmt.Sprintf("%v at %s: %s", e.Err, e.Path, e.Reason)
}

func (e *TopologyError) Unwrap() error {
	return e.Err
}

// ShapeError reports a vector whose length does not match the fan-in that
// consumes it.  Got is the length supplied, Want the length required.  Layer
// and Neuron are -1 when unknown.
type ShapeError struct {
	Layer  int
	Neuron int
	Got    int
	Want   int
}

func (e *ShapeError) Error() string {
	loc := ""
	if e.Layer >= 0 {
		loc += fmt.Sprintf(" layer %d", e.Layer)
	}
	if e.Neuron >= 0 {
		loc += fmt.Sprintf(" neuron %d", e.Neuron)
	}
	return fmt.Sprintf("%v:%s got %d, want %d", ErrShapeMismatch, loc, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
