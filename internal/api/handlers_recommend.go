// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/recommend"
	"github.com/tomtom215/timelytourist/internal/validation"
)

// RecommendationsResponse is the payload of POST /recommendations.
type RecommendationsResponse struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Count           int                        `json:"count"`
}

// SimilarLocationsResponse is the payload of GET /locations/{name}/similar.
type SimilarLocationsResponse struct {
	Location string   `json:"location"`
	Similar  []string `json:"similar"`
	Count    int      `json:"count"`
}

// Recommendations returns locations for a traveller profile. Engine faults
// yield an empty list with status 200; only invalid input is an error.
//
// @Summary Recommend destinations
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body validation.RecommendationRequest true "Traveller profile"
// @Success 200 {object} APIResponse{data=RecommendationsResponse}
// @Failure 400 {object} APIResponse
// @Router /recommendations [post]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("recommendation engine not loaded")
		return
	}

	var req validation.RecommendationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("invalid recommendation body")
		rw.BadRequest("request body must be a JSON object")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		writeValidationError(rw, verr)
		return
	}
	k, verr := validation.ResolveK(req.NumRecommendations, h.config.Recommend.DefaultK, h.config.Recommend.MaxK)
	if verr != nil {
		writeValidationError(rw, verr)
		return
	}

	recs := h.engine.Recommend(r.Context(), req.Preferences(), k)
	rw.Success(RecommendationsResponse{Recommendations: recs, Count: len(recs)})
}

// SimilarLocations returns other locations in the named location's group.
// Unknown names yield an empty list.
//
// @Summary Similar locations
// @Tags Recommendations
// @Produce json
// @Param name path string true "Location name"
// @Param limit query int false "Maximum results"
// @Success 200 {object} APIResponse{data=SimilarLocationsResponse}
// @Failure 400 {object} APIResponse
// @Router /locations/{name}/similar [get]
func (h *Handler) SimilarLocations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("recommendation engine not loaded")
		return
	}

	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}

	req := validation.SimilarLocationsRequest{LocationName: name}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			rw.BadRequest("limit must be an integer")
			return
		}
		req.NumRecommendations = &n
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		writeValidationError(rw, verr)
		return
	}
	k, verr := validation.ResolveK(req.NumRecommendations, h.config.Recommend.DefaultK, h.config.Recommend.MaxK)
	if verr != nil {
		writeValidationError(rw, verr)
		return
	}

	similar := h.engine.SimilarLocations(r.Context(), name, k)
	rw.Success(SimilarLocationsResponse{Location: name, Similar: similar, Count: len(similar)})
}

func writeValidationError(rw *ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
}
