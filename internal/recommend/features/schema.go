// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package features

import (
	"fmt"

	"github.com/tomtom215/timelytourist/internal/recommend/errdefs"
)

// Schema is the ordered list of feature identifiers fixed at training time.
type Schema struct {
	ids   []string
	index map[string]int
}

// NewSchema builds a schema from identifiers in vector order. It rejects an
// empty list, blank identifiers, and duplicates.
func NewSchema(ids []string) (*Schema, error) {
	if len(ids) == 0 {
		return nil, errdefs.ErrSchemaUnavailable
	}

	s := &Schema{
		ids:   make([]string, len(ids)),
		index: make(map[string]int, len(ids)),
	}
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: blank identifier at position %d", errdefs.ErrSchemaUnavailable, i)
		}
		if prev, dup := s.index[id]; dup {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", errdefs.ErrSchemaCollision, id, prev, i)
		}
		s.index[id] = i
		s.ids[i] = id
	}
	return s, nil
}

// Width is the vector length the schema produces.
func (s *Schema) Width() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Identifiers returns a copy of the identifiers in vector order.
func (s *Schema) Identifiers() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Position returns the vector index of id.
func (s *Schema) Position(id string) (int, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[id]
	return i, ok
}

// Encode builds the 0/1 feature vector for prefs. Unknown values set no
// bits; the only failure is a missing schema.
//
//nolint:gocritic // prefs passed by value for immutability
func (s *Schema) Encode(prefs Preferences) ([]float64, error) {
	if s.Width() == 0 {
		return nil, errdefs.ErrSchemaUnavailable
	}

	vec := make([]float64, len(s.ids))
	for _, id := range prefs.Identifiers() {
		if i, ok := s.index[id]; ok {
			vec[i] = 1
		}
	}
	return vec, nil
}
