// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package websocket

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/recommend"
	"github.com/tomtom215/timelytourist/internal/recommend/features"
)

//nolint:gochecknoinits // quiet logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "error",
		Format: "json",
		Output: io.Discard,
	})
}

// fakeEngine records calls and returns canned results.
type fakeEngine struct {
	mu        sync.Mutex
	lastPrefs features.Preferences
	lastK     int
	lastName  string
	recs      []recommend.Recommendation
	similar   []string
}

func (f *fakeEngine) Recommend(_ context.Context, prefs features.Preferences, k int) []recommend.Recommendation {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPrefs = prefs
	f.lastK = k
	out := []recommend.Recommendation{}
	for i := 0; i < len(f.recs) && i < k; i++ {
		out = append(out, f.recs[i])
	}
	return out
}

func (f *fakeEngine) SimilarLocations(_ context.Context, name string, k int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastName = name
	f.lastK = k
	if len(f.similar) > k {
		return append([]string(nil), f.similar[:k]...)
	}
	return append([]string{}, f.similar...)
}

func (f *fakeEngine) Manifest() recommend.Manifest {
	return recommend.Manifest{FeatureCount: 2, GroupCount: 1, LocationCount: 2}
}

func (f *fakeEngine) calls() (features.Preferences, int, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastPrefs, f.lastK, f.lastName
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		recs: []recommend.Recommendation{
			{Name: "Sky Deck KL Tower", Location: "Sky Deck KL Tower", Group: "Extraversion_Adrenaline Activities_Safety"},
			{Name: "Batu Caves", Location: "Batu Caves", Group: "Extraversion_Adrenaline Activities_Safety"},
		},
		similar: []string{"Batu Caves"},
	}
}

// startHub runs hub until the test ends and returns its cancel func.
func startHub(t *testing.T, hub *Hub) context.CancelFunc {
	t.Helper()
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
	return cancel
}

// newTestServer upgrades every request and registers the client with hub.
func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn)
		hub.Register <- client
		client.Start()
	}))
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// frame is a decoded outbound message with raw data.
type frame struct {
	Type string          `json:"type"`
	ID   json.RawMessage `json:"id"`
	Data json.RawMessage `json:"data"`
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return f
}

// connect dials and consumes the engine_ready greeting.
func connect(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	conn := dial(t, server)
	if f := readFrame(t, conn); f.Type != MessageTypeEngineReady {
		t.Fatalf("first frame = %q, want %q", f.Type, MessageTypeEngineReady)
	}
	return conn
}

func send(t *testing.T, conn *websocket.Conn, raw string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
		t.Fatalf("write: %v", err)
	}
}
