// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package validation

import (
	"fmt"

	"github.com/tomtom215/timelytourist/internal/recommend/features"
)

// RecommendationRequest is the body of a recommendation request, shared by
// the HTTP API and the WebSocket get_recommendations event.
type RecommendationRequest struct {
	PersonalityTraits  string  `json:"personality_traits" validate:"required,notblank,max=200"`
	TourismCategory    string  `json:"tourism_category" validate:"required,notblank,max=200"`
	TravelMotivation   *string `json:"travel_motivation,omitempty" validate:"omitempty,max=200"`
	TravellingConcerns *string `json:"travelling_concerns,omitempty" validate:"omitempty,max=200"`
	NumRecommendations *int    `json:"num_recommendations,omitempty"`
}

// Preferences converts the request into engine input. Optional fields stay
// present if they were sent, even when empty.
//
//nolint:gocritic // value receiver keeps the request immutable
func (r RecommendationRequest) Preferences() features.Preferences {
	return features.Preferences{
		PersonalityTraits:  r.PersonalityTraits,
		TourismCategory:    r.TourismCategory,
		TravelMotivation:   r.TravelMotivation,
		TravellingConcerns: r.TravellingConcerns,
	}
}

// SimilarLocationsRequest is the body of the get_similar_locations event.
type SimilarLocationsRequest struct {
	LocationName       string `json:"location_name" validate:"required,notblank,max=300"`
	NumRecommendations *int   `json:"num_recommendations,omitempty"`
}

// ResolveK returns the requested count, or defaultK when none was sent.
// Counts outside 0..maxK are rejected.
func ResolveK(requested *int, defaultK, maxK int) (int, *RequestValidationError) {
	if requested == nil {
		return defaultK, nil
	}
	k := *requested
	if k < 0 || k > maxK {
		return 0, NewFieldError("num_recommendations", "range", fmt.Sprintf("0-%d", maxK), k,
			fmt.Sprintf("num_recommendations must be between 0 and %d", maxK))
	}
	return k, nil
}
