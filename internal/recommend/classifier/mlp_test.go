// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package classifier

import (
	"errors"
	"testing"

	"github.com/tomtom215/timelytourist/internal/recommend/errdefs"
)

// twoFeatureNet routes [1,1] to class 10 and [0,0] to class 20.
func twoFeatureNet(t *testing.T) *MLP {
	t.Helper()
	m, err := New([]int{10, 20}, []Layer{
		{
			Weights: [][]float64{{1, 0}, {1, 0}},
			Biases:  []float64{0, 0.5},
		},
	}, ActivationReLU)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestNew_ShapeValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		classes []int
		layers  []Layer
		act     Activation
	}{
		{
			name:    "single class",
			classes: []int{0},
			layers:  []Layer{{Weights: [][]float64{{1}}, Biases: []float64{0}}},
		},
		{
			name:    "no layers",
			classes: []int{0, 1},
		},
		{
			name:    "ragged weights",
			classes: []int{0, 1},
			layers:  []Layer{{Weights: [][]float64{{1, 0}, {1}}, Biases: []float64{0, 0}}},
		},
		{
			name:    "layers do not chain",
			classes: []int{0, 1},
			layers: []Layer{
				{Weights: [][]float64{{1, 0, 0}}, Biases: []float64{0, 0, 0}},
				{Weights: [][]float64{{1, 0}, {1, 0}}, Biases: []float64{0, 0}},
			},
		},
		{
			name:    "output width disagrees with classes",
			classes: []int{0, 1, 2},
			layers:  []Layer{{Weights: [][]float64{{1, 0}}, Biases: []float64{0, 0}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tt.classes, tt.layers, tt.act); !errors.Is(err, errdefs.ErrShapeMismatch) {
				t.Errorf("New() error = %v, want ErrShapeMismatch", err)
			}
		})
	}
}

func TestNew_UnsupportedActivation(t *testing.T) {
	t.Parallel()

	_, err := New([]int{0, 1}, []Layer{{Weights: [][]float64{{1, 0}}, Biases: []float64{0, 0}}}, "swish")
	if err == nil {
		t.Error("New() with unknown activation should fail")
	}
}

func TestMLP_Predict(t *testing.T) {
	t.Parallel()

	m := twoFeatureNet(t)

	tests := []struct {
		name string
		in   []float64
		want int
	}{
		{"both set", []float64{1, 1}, 10},
		{"none set", []float64{0, 0}, 20},
		{"tie goes to lowest index", []float64{0.5, 0}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := m.Predict(tt.in)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Predict(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestMLP_Predict_HiddenLayer(t *testing.T) {
	t.Parallel()

	// The hidden ReLU clips the negative path so only feature 0 can
	// select class 1.
	m, err := New([]int{0, 1}, []Layer{
		{Weights: [][]float64{{1, 0}, {0, -1}}, Biases: []float64{0, 0}},
		{Weights: [][]float64{{0, 2}, {1, 0}}, Biases: []float64{0.1, 0}},
	}, ActivationReLU)
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := m.Predict([]float64{1, 0}); got != 1 {
		t.Errorf("Predict([1 0]) = %d, want 1", got)
	}
	if got, _ := m.Predict([]float64{0, 1}); got != 0 {
		t.Errorf("Predict([0 1]) = %d, want 0", got)
	}
}

func TestMLP_Predict_Binary(t *testing.T) {
	t.Parallel()

	m, err := New([]int{3, 7}, []Layer{
		{Weights: [][]float64{{2}}, Biases: []float64{-1}},
	}, ActivationReLU)
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := m.Predict([]float64{1}); got != 7 {
		t.Errorf("Predict([1]) = %d, want 7", got)
	}
	if got, _ := m.Predict([]float64{0}); got != 3 {
		t.Errorf("Predict([0]) = %d, want 3", got)
	}
}

func TestMLP_Predict_Unavailable(t *testing.T) {
	t.Parallel()

	var m *MLP
	if _, err := m.Predict([]float64{1}); !errors.Is(err, errdefs.ErrClassifierUnavailable) {
		t.Errorf("nil Predict() error = %v, want ErrClassifierUnavailable", err)
	}
	if _, err := (&MLP{}).Predict([]float64{1}); !errors.Is(err, errdefs.ErrClassifierUnavailable) {
		t.Errorf("zero Predict() error = %v, want ErrClassifierUnavailable", err)
	}
}

func TestMLP_Predict_ShapeMismatch(t *testing.T) {
	t.Parallel()

	m := twoFeatureNet(t)
	if _, err := m.Predict([]float64{1}); !errors.Is(err, errdefs.ErrShapeMismatch) {
		t.Errorf("Predict() error = %v, want ErrShapeMismatch", err)
	}
}

func TestMLP_Classes_ReturnsCopy(t *testing.T) {
	t.Parallel()

	m := twoFeatureNet(t)
	c := m.Classes()
	c[0] = 99
	if got, _ := m.Predict([]float64{1, 1}); got != 10 {
		t.Errorf("Predict() = %d after mutating Classes(), want 10", got)
	}
}
