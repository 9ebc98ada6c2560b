// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package features

import "strings"

// Axis is one of the fixed preference questions.
type Axis string

// Recognized preference axes. The string values are the dataset column
// headers and form the prefix of every identifier.
const (
	AxisPersonalityTraits  Axis = "Personality Traits"
	AxisTourismCategory    Axis = "Tourism Category"
	AxisTravelMotivation   Axis = "Travel Motivation"
	AxisTravellingConcerns Axis = "Travelling Concerns"
)

// Axes lists every axis in dataset column order.
var Axes = []Axis{
	AxisPersonalityTraits,
	AxisTourismCategory,
	AxisTravelMotivation,
	AxisTravellingConcerns,
}

var normalizer = strings.NewReplacer(" ", "_", ",", "", "&", "and")

// Normalize applies the identifier rule: lower-case, spaces to
// underscores, commas dropped, ampersands spelled out.
func Normalize(s string) string {
	return normalizer.Replace(strings.ToLower(s))
}

// Identifier returns the feature identifier for an axis/value pair.
func Identifier(axis Axis, value string) string {
	return Normalize(string(axis) + "_" + value)
}
