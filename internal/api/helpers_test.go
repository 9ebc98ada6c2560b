// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/timelytourist/internal/config"
	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/recommend"
	"github.com/tomtom215/timelytourist/internal/recommend/features"
	"github.com/tomtom215/timelytourist/internal/recommend/registry"
)

//nolint:gochecknoinits // quiet logging for tests
func init() {
	logging.Init(logging.Config{Level: "error", Format: "json", Output: io.Discard})
}

const testGroup = "Extraversion_Adrenaline Activities_Safety"

// mockEngine answers Extraversion/Adrenaline Activities with two
// locations and everything else with nothing.
type mockEngine struct {
	mu        sync.Mutex
	lastK     int
	lastName  string
	lastPrefs features.Preferences
}

func (m *mockEngine) Recommend(_ context.Context, prefs features.Preferences, k int) []recommend.Recommendation {
	m.mu.Lock()
	m.lastK, m.lastPrefs = k, prefs
	m.mu.Unlock()

	out := []recommend.Recommendation{}
	if prefs.PersonalityTraits != "Extraversion" || prefs.TourismCategory != "Adrenaline Activities" {
		return out
	}
	for _, name := range []string{"Sky Deck KL Tower", "Batu Caves"} {
		if len(out) == k {
			break
		}
		out = append(out, recommend.Recommendation{
			Name:             name,
			Location:         name,
			Group:            testGroup,
			PersonalityMatch: prefs.PersonalityTraits,
			Category:         prefs.TourismCategory,
			Motivation:       prefs.TravelMotivation,
			Concerns:         prefs.TravellingConcerns,
		})
	}
	return out
}

func (m *mockEngine) SimilarLocations(_ context.Context, name string, k int) []string {
	m.mu.Lock()
	m.lastK, m.lastName = k, name
	m.mu.Unlock()

	if name != "Sky Deck KL Tower" || k == 0 {
		return []string{}
	}
	return []string{"Batu Caves"}
}

func (m *mockEngine) Manifest() recommend.Manifest {
	return recommend.Manifest{
		Artifacts:     []recommend.ArtifactInfo{{Kind: "metadata", Version: 1, Checksum: "abc"}},
		FeatureCount:  2,
		GroupCount:    2,
		LocationCount: 2,
	}
}

func (m *mockEngine) last() (int, string, features.Preferences) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastK, m.lastName, m.lastPrefs
}

type mockHistory struct {
	activations []registry.Activation
	err         error
	lastLimit   int
}

func (m *mockHistory) History(_ context.Context, limit int) ([]registry.Activation, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	if len(m.activations) > limit {
		return m.activations[:limit], nil
	}
	return m.activations, nil
}

var errRegistryDown = errors.New("registry closed")

func testHistory() *mockHistory {
	return &mockHistory{activations: []registry.Activation{
		{ID: "a2", ActivatedAt: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), GroupCount: 2},
		{ID: "a1", ActivatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), GroupCount: 1},
	}}
}

func newTestRouter(cfg *config.Config, engine Engine, opts HandlerOptions) http.Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	h := NewHandler(cfg, engine, opts)
	return NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFrom(&cfg.Security))).Setup()
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// envelope decodes an APIResponse with raw data.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return env
}
