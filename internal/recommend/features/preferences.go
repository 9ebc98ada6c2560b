// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package features

// Preferences is one user's answers. PersonalityTraits and TourismCategory
// are required; a nil optional axis is left out of the encoding.
type Preferences struct {
	PersonalityTraits  string
	TourismCategory    string
	TravelMotivation   *string
	TravellingConcerns *string
}

// Identifiers returns the identifier of every supplied axis, in axis order.
//
//nolint:gocritic // value receiver keeps Preferences immutable
func (p Preferences) Identifiers() []string {
	ids := make([]string, 0, len(Axes))
	ids = append(ids,
		Identifier(AxisPersonalityTraits, p.PersonalityTraits),
		Identifier(AxisTourismCategory, p.TourismCategory),
	)
	if p.TravelMotivation != nil {
		ids = append(ids, Identifier(AxisTravelMotivation, *p.TravelMotivation))
	}
	if p.TravellingConcerns != nil {
		ids = append(ids, Identifier(AxisTravellingConcerns, *p.TravellingConcerns))
	}
	return ids
}

// Optional returns a pointer to s, for filling optional axes.
func Optional(s string) *string {
	return &s
}
