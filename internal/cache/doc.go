// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

/*
Package cache memoizes recommendation results.

LRU is a generic, capacity-bounded least recently used cache backed by a
doubly-linked list and a map. Recommender wraps the engine with an LRU
keyed on the raw preference values and k:

	cached := cache.NewRecommender(engine, cfg.Recommend.CacheSize)
	hub := websocket.NewHub(cached, opts)
	handler := api.NewHandler(cfg, cached, api.HandlerOptions{Hub: hub})

Lookups, evictions and size are exported as Prometheus metrics
(recommendation_cache_*). The engine's own metrics count only misses.

There is no TTL: artifacts do not change while the process runs.
*/
package cache
