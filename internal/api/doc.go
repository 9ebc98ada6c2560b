// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

/*
Package api is the HTTP surface of the recommendation service, built on chi.

Routes:

	GET  /api/v1/health                      engine readiness and shape
	POST /api/v1/recommendations             recommend destinations for a traveller profile
	GET  /api/v1/locations/{name}/similar    other locations in the same group (?limit=N)
	GET  /api/v1/engine                      artifact manifest and activation history (?history=N)
	GET  /metrics                            Prometheus exposition
	GET  /ws                                 WebSocket upgrade, see package websocket

Every /api/v1 response is an APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 0}}
	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "...", "details": {...}}, "meta": {...}}

A recommendation request that the engine cannot answer (for example an
unseen personality trait) still returns 200 with an empty list; only
malformed or invalid input is rejected.

Global middleware: request id, RealIP, access log, chi Recoverer, CORS
(go-chi/cors). The /api/v1 group adds httprate per-IP limiting, security
headers, Prometheus request metrics, and gzip compression.
*/
package api
