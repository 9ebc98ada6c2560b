// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the health payload.
type HealthStatus struct {
	Status           string  `json:"status"`
	EngineReady      bool    `json:"engine_ready"`
	Groups           int     `json:"groups"`
	Features         int     `json:"features"`
	Locations        int     `json:"locations"`
	WebSocketClients int     `json:"websocket_clients"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
	Version          string  `json:"version,omitempty"`
}

// Health reports whether the engine is serving.
//
// @Summary Service health
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Failure 503 {object} APIResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("recommendation engine not loaded")
		return
	}

	m := h.engine.Manifest()
	status := HealthStatus{
		Status:        "healthy",
		EngineReady:   true,
		Groups:        m.GroupCount,
		Features:      m.FeatureCount,
		Locations:     m.LocationCount,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Version:       h.version,
	}
	if h.wsHub != nil {
		status.WebSocketClients = h.wsHub.GetClientCount()
	}
	rw.Success(status)
}
