// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package scaler

import (
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/timelytourist/internal/recommend/errdefs"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mean    []float64
		scale   []float64
		wantErr bool
	}{
		{"valid", []float64{0, 1}, []float64{1, 2}, false},
		{"empty", nil, nil, true},
		{"length mismatch", []float64{0, 1}, []float64{1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.mean, tt.scale)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errdefs.ErrShapeMismatch) {
				t.Errorf("New() error = %v, want ErrShapeMismatch", err)
			}
		})
	}
}

func TestStandard_Transform(t *testing.T) {
	t.Parallel()

	s, err := New([]float64{0.5, 0.25, 0}, []float64{0.5, 0.5, 0})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Transform([]float64{1, 0, 1})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	want := []float64{1, -0.5, 1}
	if len(got) != len(want) {
		t.Fatalf("len(Transform()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Transform()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStandard_Transform_ShapeMismatch(t *testing.T) {
	t.Parallel()

	s := unitScaler(t, 3)
	for _, width := range []int{0, 2, 4} {
		if _, err := s.Transform(make([]float64, width)); !errors.Is(err, errdefs.ErrShapeMismatch) {
			t.Errorf("Transform(width %d) error = %v, want ErrShapeMismatch", width, err)
		}
	}
}

func TestStandard_Transform_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	s, err := New([]float64{1, 1}, []float64{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	in := []float64{1, 0}
	if _, err := s.Transform(in); err != nil {
		t.Fatal(err)
	}
	if in[0] != 1 || in[1] != 0 {
		t.Errorf("input mutated: %v", in)
	}
}

// unitScaler has zero means and unit scales.
func unitScaler(t *testing.T, width int) *Standard {
	t.Helper()
	s, err := New(make([]float64, width), make([]float64, width))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNew_ZeroScaleIsUnit(t *testing.T) {
	t.Parallel()

	s := unitScaler(t, 2)
	if s.Width() != 2 {
		t.Errorf("Width() = %d, want 2", s.Width())
	}
	got, err := s.Transform([]float64{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 1 || got[1] != 0 {
		t.Errorf("Transform() = %v, want [1 0]", got)
	}
}
