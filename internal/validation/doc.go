// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

// Package validation validates request DTOs with go-playground/validator.
//
// The HTTP API and the WebSocket dispatcher decode into the same request
// types, so both transports apply identical rules:
//
//	var req validation.RecommendationRequest
//	if err := json.Unmarshal(body, &req); err != nil { ... }
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
//	k, verr := validation.ResolveK(req.NumRecommendations, defaultK, maxK)
//
// Error field names are the JSON names (personality_traits, not
// PersonalityTraits).
package validation
