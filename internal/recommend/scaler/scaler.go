// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

// Package scaler applies the standardization transform fitted alongside the
// classifier. The fitted parameters are read-only after construction.
package scaler

import (
	"fmt"

	"github.com/tomtom215/timelytourist/internal/recommend/errdefs"
)

// Standard is a fitted per-feature standardization: (x - mean) / scale.
type Standard struct {
	mean  []float64
	scale []float64
}

// New builds a scaler from fitted means and scales. A zero scale marks a
// constant feature and is treated as 1, matching how the transform was fit.
func New(mean, scale []float64) (*Standard, error) {
	if len(mean) == 0 {
		return nil, fmt.Errorf("%w: scaler has no fitted features", errdefs.ErrShapeMismatch)
	}
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("%w: %d means but %d scales", errdefs.ErrShapeMismatch, len(mean), len(scale))
	}

	s := &Standard{
		mean:  make([]float64, len(mean)),
		scale: make([]float64, len(scale)),
	}
	copy(s.mean, mean)
	for i, v := range scale {
		if v == 0 {
			v = 1
		}
		s.scale[i] = v
	}
	return s, nil
}

// Width is the number of features the transform was fitted on.
func (s *Standard) Width() int {
	return len(s.mean)
}

// Transform standardizes x into a new slice of the same width.
func (s *Standard) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.mean) {
		return nil, fmt.Errorf("%w: scaler fitted on %d features, got %d", errdefs.ErrShapeMismatch, len(s.mean), len(x))
	}

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}
