// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

/*
Package middleware provides chi-compatible HTTP middleware.

  - RequestID: assigns or propagates X-Request-ID and stores it for logging.Ctx
  - PrometheusMetrics: request count, latency, and in-flight gauge per route pattern
  - AccessLog: per-request debug line, warn above a latency threshold

All middleware has the func(http.Handler) http.Handler shape:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Group(func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Post("/api/v1/recommendations", h.Recommendations)
	})

Response writers are wrapped with chi's WrapResponseWriter, which keeps
http.Hijacker available for WebSocket upgrades.
*/
package middleware
