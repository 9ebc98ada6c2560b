// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/timelytourist/internal/config"
	"github.com/tomtom215/timelytourist/internal/metrics"
	ws "github.com/tomtom215/timelytourist/internal/websocket"
)

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := newTestRouter(nil, &mockEngine{}, HandlerOptions{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/nowhere", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v", env.Error)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/recommendations", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(nil, &mockEngine{}, HandlerOptions{})
	doRequest(t, router, http.MethodGet, "/api/v1/health", "")

	rec := doRequest(t, router, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("api_requests_total missing from exposition")
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Security.RateLimitReqs = 2
	cfg.Security.RateLimitWindow = time.Minute
	router := newTestRouter(cfg, &mockEngine{}, HandlerOptions{})

	before := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("/api/v1"))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, doRequest(t, router, http.MethodGet, "/api/v1/health", "").Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
	if after := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues("/api/v1")); after-before != 1 {
		t.Errorf("rate limit hits delta = %v, want 1", after-before)
	}
}

func TestRouter_RateLimitDisabled(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Security.RateLimitReqs = 1
	cfg.Security.RateLimitDisabled = true
	router := newTestRouter(cfg, &mockEngine{}, HandlerOptions{})

	for i := 0; i < 3; i++ {
		if rec := doRequest(t, router, http.MethodGet, "/api/v1/health", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Security.CORSOrigins = []string{"https://tourist.example"}
	router := newTestRouter(cfg, &mockEngine{}, HandlerOptions{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
	req.Header.Set("Origin", "https://tourist.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://tourist.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestCheckWebSocketOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"wildcard", []string{"*"}, "https://any.example", true},
		{"wildcard without origin", []string{"*"}, "", true},
		{"listed", []string{"https://a.example"}, "https://a.example", true},
		{"unlisted", []string{"https://a.example"}, "https://b.example", false},
		{"missing origin", []string{"https://a.example"}, "", false},
		{"nothing allowed", nil, "https://a.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			cfg.Security.CORSOrigins = tt.allowed
			h := NewHandler(cfg, &mockEngine{}, HandlerOptions{})

			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if got := h.checkWebSocketOrigin(req); got != tt.want {
				t.Errorf("checkWebSocketOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRouter_WebSocketRoundTrip(t *testing.T) {
	t.Parallel()

	engine := &mockEngine{}
	hub := ws.NewHub(engine, ws.DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	server := httptest.NewServer(newTestRouter(nil, engine, HandlerOptions{Hub: hub}))
	t.Cleanup(server.Close)

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	read := func() ws.Message {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg ws.Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		return msg
	}

	if msg := read(); msg.Type != ws.MessageTypeEngineReady {
		t.Fatalf("greeting = %q", msg.Type)
	}

	req := `{"type":"get_recommendations","id":"r1","data":{"personality_traits":"Extraversion","tourism_category":"Adrenaline Activities","num_recommendations":2}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(req)); err != nil {
		t.Fatal(err)
	}
	msg := read()
	if msg.Type != ws.MessageTypeRecommendations || string(msg.ID) != `"r1"` {
		t.Errorf("reply = %s %s", msg.Type, msg.ID)
	}
	if k, _, _ := engine.last(); k != 2 {
		t.Errorf("engine k = %d, want 2", k)
	}
}
