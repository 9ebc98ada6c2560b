// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

/*
Package websocket serves recommendations over gorilla/websocket.

A Hub owns the set of connected clients. Each Client runs a read pump and a
write pump; replies to a client's own events are queued on that client's
send channel, and broadcasts fan out through the hub.

Inbound frames:

	{"type": "get_recommendations", "id": 1, "data": {"personality_traits": "...", "tourism_category": "..."}}
	{"type": "get_similar_locations", "id": 2, "data": {"location_name": "...", "num_recommendations": 3}}
	{"type": "ping", "id": 3}

Replies echo id:

	{"type": "recommendations", "id": 1, "data": {"recommendations": [...]}}
	{"type": "similar_locations", "id": 2, "data": {"location": "...", "similar": [...]}}
	{"type": "pong", "id": 3, "data": null}
	{"type": "error", "id": 1, "data": {"error": "...", "recommendations": []}}

A client receives engine_ready with the artifact manifest when it
registers, and server_shutdown before the hub closes it. Each client has
its own token bucket (golang.org/x/time/rate); events over the limit get an
error frame.

The hub runs under suture via RunWithContext:

	hub := websocket.NewHub(engine, websocket.Options{DefaultK: 5, MaxK: 50, EventsPerSecond: 10, Burst: 20})
	go hub.RunWithContext(ctx)
*/
package websocket
