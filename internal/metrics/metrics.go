// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package metrics

import (
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation pipeline metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total recommendation requests by outcome status",
		},
		[]string{"status"}, // ok, empty_group, shape_mismatch, ...
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation pipeline duration in seconds",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		},
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendations_returned",
			Help:    "Number of locations returned per recommendation request",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
	)

	SimilarQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similar_location_queries_total",
			Help: "Total similar-location lookups",
		},
		[]string{"found"},
	)

	SimilarQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "similar_location_query_duration_seconds",
			Help:    "Similar-location lookup duration in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		},
	)

	// Recommendation result cache
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_requests_total",
			Help: "Recommendation cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommendation_cache_entries",
			Help: "Entries held in the recommendation cache",
		},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_evictions_total",
			Help: "Entries evicted from the recommendation cache",
		},
	)

	// Engine state
	EngineFeatures = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_feature_count",
			Help: "Width of the loaded feature schema",
		},
	)

	EngineGroups = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_group_count",
			Help: "Number of location groups in the loaded directory",
		},
	)

	EngineLocations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_location_count",
			Help: "Number of locations across all groups",
		},
	)

	ArtifactVersion = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artifact_version",
			Help: "Loaded artifact version by kind",
		},
		[]string{"kind"},
	)

	EngineLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_load_duration_seconds",
			Help: "Time taken to load artifacts and build the engine",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Total number of WebSocket events received by type",
		},
		[]string{"type"},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"}, // decode, validation, rate_limited, unknown_event, write
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordWSEvent counts a received WebSocket event.
func RecordWSEvent(eventType string) {
	WSMessagesReceived.WithLabelValues(eventType).Inc()
}

// RecordWSError counts a WebSocket error by type.
func RecordWSError(errorType string) {
	WSErrors.WithLabelValues(errorType).Inc()
}

// EngineSnapshot is the subset of an engine manifest exported as gauges.
type EngineSnapshot struct {
	Features     int
	Groups       int
	Locations    int
	Versions     map[string]int
	LoadDuration time.Duration
}

// RecordEngineLoad exports the loaded engine's shape.
//
//nolint:gocritic // snapshot passed by value, read once
func RecordEngineLoad(s EngineSnapshot) {
	EngineFeatures.Set(float64(s.Features))
	EngineGroups.Set(float64(s.Groups))
	EngineLocations.Set(float64(s.Locations))
	EngineLoadDuration.Set(s.LoadDuration.Seconds())
	for kind, v := range s.Versions {
		ArtifactVersion.WithLabelValues(kind).Set(float64(v))
	}
}

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// EngineObserver feeds recommendation engine results into the metrics
// above. The engine calls it once per request.
type EngineObserver struct{}

// ObserveRecommendation records one recommendation request.
func (EngineObserver) ObserveRecommendation(status string, returned int, d time.Duration) {
	RecommendationsTotal.WithLabelValues(status).Inc()
	RecommendationsReturned.Observe(float64(returned))
	if d > 0 {
		RecommendationDuration.Observe(d.Seconds())
	}
}

// ObserveSimilar records one similar-location lookup.
func (EngineObserver) ObserveSimilar(found bool, _ int, d time.Duration) {
	SimilarQueriesTotal.WithLabelValues(strconv.FormatBool(found)).Inc()
	SimilarQueryDuration.Observe(d.Seconds())
}

// RecordCacheLookup counts one recommendation cache lookup.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheRequestsTotal.WithLabelValues("hit").Inc()
		return
	}
	CacheRequestsTotal.WithLabelValues("miss").Inc()
}
