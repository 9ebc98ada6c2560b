// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/recommend"
	"github.com/tomtom215/timelytourist/internal/recommend/registry"
)

// EngineStatus is the payload of GET /engine.
type EngineStatus struct {
	Manifest recommend.Manifest    `json:"manifest"`
	History  []registry.Activation `json:"history"`
}

// Engine describes the loaded artifacts and recent activations.
//
// @Summary Loaded artifact manifest
// @Tags Engine
// @Produce json
// @Param history query int false "Number of activations to return"
// @Success 200 {object} APIResponse{data=EngineStatus}
// @Router /engine [get]
func (h *Handler) Engine(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("recommendation engine not loaded")
		return
	}

	limit := h.config.Registry.HistoryLimit
	if raw := r.URL.Query().Get("history"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			rw.BadRequest("history must be a non-negative integer")
			return
		}
		if n < limit || limit <= 0 {
			limit = n
		}
	}

	status := EngineStatus{
		Manifest: h.engine.Manifest(),
		History:  []registry.Activation{},
	}
	if h.history != nil && limit > 0 {
		history, err := h.history.History(r.Context(), limit)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("failed to read activation history")
			rw.Error(http.StatusInternalServerError, ErrCodeRegistryError, "activation history unavailable")
			return
		}
		status.History = history
	}

	rw.Success(status)
}
