// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

// Package features turns categorical travel preferences into the fixed-width
// binary vectors consumed by the scaler and classifier.
//
// # Identifiers
//
// Every (axis, value) pair seen in the training dataset becomes one feature
// identifier:
//
//	Identifier(AxisTourismCategory, "Food & Drink") == "tourism_category_food_and_drink"
//
// Normalize is shared by the offline metadata builder and the online
// encoder. Any drift between the two silently zeroes every vector, so both
// sides must call this package rather than re-implementing the rule.
//
// # Schema
//
// A Schema is the ordered identifier list fixed at training time. Its
// length is the vector width and its order is the index of every bit. A
// Schema is immutable once built and safe for concurrent use.
//
// # Encoding
//
// Encoding is exact-match only. A value unseen at training time contributes
// no bits for its axis; there is no substring or fuzzy matching.
//
//	schema, _ := features.NewSchema([]string{
//	    "personality_traits_extraversion",
//	    "tourism_category_adrenaline_activities",
//	})
//	vec, _ := schema.Encode(features.Preferences{
//	    PersonalityTraits: "Extraversion",
//	    TourismCategory:   "Adrenaline Activities",
//	})
//	// vec == []float64{1, 1}
package features
