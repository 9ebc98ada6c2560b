// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

// Package classifier runs inference for the trained multi-layer perceptron
// that maps a scaled preference vector to a location group id.
//
// The network is a stack of dense layers. Hidden layers share one
// activation; the output layer is read with argmax, so the softmax (or the
// logistic unit of a two-class network) never has to be evaluated. Ties
// resolve to the lowest class index, which keeps prediction deterministic.
package classifier

import (
	"fmt"
	"math"

	"github.com/tomtom215/timelytourist/internal/recommend/errdefs"
)

// Activation names a hidden-layer activation function.
type Activation string

// Supported hidden activations.
const (
	ActivationReLU     Activation = "relu"
	ActivationTanh     Activation = "tanh"
	ActivationLogistic Activation = "logistic"
	ActivationIdentity Activation = "identity"
)

// Layer is one dense layer. Weights is indexed [input][output].
type Layer struct {
	Weights [][]float64
	Biases  []float64
}

func (l Layer) inputs() int  { return len(l.Weights) }
func (l Layer) outputs() int { return len(l.Biases) }

// MLP is a loaded, read-only network. A nil *MLP is an unloaded classifier.
type MLP struct {
	classes []int
	layers  []Layer
	hidden  func(float64) float64
	binary  bool
}

// New validates the layer shapes and returns a ready network. classes maps
// output index to group id.
func New(classes []int, layers []Layer, hidden Activation) (*MLP, error) {
	if len(classes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 classes, got %d", errdefs.ErrShapeMismatch, len(classes))
	}
	if len(layers) == 0 {
		return nil, fmt.Errorf("%w: network has no layers", errdefs.ErrShapeMismatch)
	}

	fn, err := activation(hidden)
	if err != nil {
		return nil, err
	}

	for i, l := range layers {
		if l.inputs() == 0 || l.outputs() == 0 {
			return nil, fmt.Errorf("%w: layer %d is empty", errdefs.ErrShapeMismatch, i)
		}
		for j, row := range l.Weights {
			if len(row) != l.outputs() {
				return nil, fmt.Errorf("%w: layer %d row %d has %d weights, want %d",
					errdefs.ErrShapeMismatch, i, j, len(row), l.outputs())
			}
		}
		if i > 0 && layers[i-1].outputs() != l.inputs() {
			return nil, fmt.Errorf("%w: layer %d emits %d values but layer %d takes %d",
				errdefs.ErrShapeMismatch, i-1, layers[i-1].outputs(), i, l.inputs())
		}
	}

	out := layers[len(layers)-1].outputs()
	binary := len(classes) == 2 && out == 1
	if !binary && out != len(classes) {
		return nil, fmt.Errorf("%w: output layer has %d units for %d classes",
			errdefs.ErrShapeMismatch, out, len(classes))
	}

	m := &MLP{
		classes: append([]int(nil), classes...),
		layers:  layers,
		hidden:  fn,
		binary:  binary,
	}
	return m, nil
}

func activation(a Activation) (func(float64) float64, error) {
	switch a {
	case ActivationReLU, "":
		return func(x float64) float64 { return math.Max(0, x) }, nil
	case ActivationTanh:
		return math.Tanh, nil
	case ActivationLogistic:
		return func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }, nil
	case ActivationIdentity:
		return func(x float64) float64 { return x }, nil
	default:
		return nil, fmt.Errorf("unsupported activation %q", a)
	}
}

// InputWidth is the vector width the first layer expects.
func (m *MLP) InputWidth() int {
	if m == nil {
		return 0
	}
	return m.layers[0].inputs()
}

// Classes returns a copy of the group ids the network can emit.
func (m *MLP) Classes() []int {
	if m == nil {
		return nil
	}
	return append([]int(nil), m.classes...)
}

// Predict returns the group id for one scaled vector.
func (m *MLP) Predict(x []float64) (int, error) {
	if m == nil || len(m.layers) == 0 {
		return 0, errdefs.ErrClassifierUnavailable
	}
	if len(x) != m.InputWidth() {
		return 0, fmt.Errorf("%w: classifier expects %d features, got %d", errdefs.ErrShapeMismatch, m.InputWidth(), len(x))
	}

	act := x
	last := len(m.layers) - 1
	for i, l := range m.layers {
		next := make([]float64, l.outputs())
		copy(next, l.Biases)
		for in, v := range act {
			if v == 0 {
				continue
			}
			row := l.Weights[in]
			for out := range next {
				next[out] += v * row[out]
			}
		}
		if i < last {
			for j := range next {
				next[j] = m.hidden(next[j])
			}
		}
		act = next
	}

	if m.binary {
		if act[0] > 0 {
			return m.classes[1], nil
		}
		return m.classes[0], nil
	}

	best := 0
	for i := 1; i < len(act); i++ {
		if act[i] > act[best] {
			best = i
		}
	}
	return m.classes[best], nil
}
