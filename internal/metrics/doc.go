// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

/*
Package metrics provides Prometheus metrics for the recommendation server.

Metrics are registered with promauto on the default registry and exposed
at /metrics:

	curl http://localhost:9999/metrics

# Recommendation Metrics

  - recommendations_total{status}: requests by outcome (ok, empty_group,
    schema_unavailable, shape_mismatch, classifier_unavailable,
    unknown_group, internal_error)
  - recommendation_duration_seconds: pipeline latency
  - recommendations_returned: locations returned per request
  - similar_location_queries_total{found}
  - similar_location_query_duration_seconds

EngineObserver implements the engine's observer interface:

	engine.SetObserver(metrics.EngineObserver{})

# Engine State

  - engine_feature_count, engine_group_count, engine_location_count
  - artifact_version{kind}
  - engine_load_duration_seconds

# HTTP and WebSocket

  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}
  - websocket_connections
  - websocket_messages_sent_total
  - websocket_messages_received_total{type}
  - websocket_errors_total{error_type}
*/
package metrics
