// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package recommend

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/recommend/classifier"
	"github.com/tomtom215/timelytourist/internal/recommend/directory"
	"github.com/tomtom215/timelytourist/internal/recommend/features"
	"github.com/tomtom215/timelytourist/internal/recommend/scaler"
)

const scenarioGroup = "Extraversion_Adrenaline Activities_Safety"

// mockClassifier returns a fixed group id.
type mockClassifier struct {
	width int
	id    int
	err   error
	calls int
	mu    sync.Mutex
}

func (m *mockClassifier) InputWidth() int { return m.width }

func (m *mockClassifier) Predict(x []float64) (int, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return m.id, nil
}

// mockScaler lets tests force scaler faults.
type mockScaler struct {
	width int
	out   []float64
	err   error
}

func (m *mockScaler) Width() int { return m.width }

func (m *mockScaler) Transform(x []float64) ([]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.out != nil {
		return m.out, nil
	}
	return x, nil
}

// mockPanicDirectory panics on lookup.
type mockPanicDirectory struct {
	Directory
}

func (mockPanicDirectory) ResolveLabel(int) (string, error) { panic("boom") }

// recordingObserver captures observer callbacks.
type recordingObserver struct {
	mu       sync.Mutex
	statuses []string
	similar  []bool
}

func (r *recordingObserver) ObserveRecommendation(status string, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func (r *recordingObserver) ObserveSimilar(found bool, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.similar = append(r.similar, found)
}

// scenarioComponents is a two-feature engine where Extraversion +
// Adrenaline Activities lands in scenarioGroup and anything else lands in
// an empty group.
func scenarioComponents(t *testing.T) Components {
	t.Helper()

	schema, err := features.NewSchema([]string{
		"personality_traits_extraversion",
		"tourism_category_adrenaline_activities",
	})
	if err != nil {
		t.Fatal(err)
	}

	mlp, err := classifier.New([]int{0, 1}, []classifier.Layer{
		{Weights: [][]float64{{1, 0}, {1, 0}}, Biases: []float64{0, 1.5}},
	}, classifier.ActivationReLU)
	if err != nil {
		t.Fatal(err)
	}

	dir, err := directory.New(
		[]string{scenarioGroup, "Introversion_Culture_Cost"},
		[]directory.Group{
			{Label: scenarioGroup, Locations: []directory.Location{
				{Name: "Sky Deck KL Tower", PlaceID: "ChIJ-sky"},
				{Name: "Batu Caves"},
			}},
			{Label: "Introversion_Culture_Cost"},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	return Components{
		Schema:     schema,
		Scaler:     identityScaler(t, 2),
		Classifier: mlp,
		Directory:  dir,
	}
}

// identityScaler leaves vectors unchanged.
func identityScaler(t *testing.T, width int) *scaler.Standard {
	t.Helper()
	ones := make([]float64, width)
	for i := range ones {
		ones[i] = 1
	}
	s, err := scaler.New(make([]float64, width), ones)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newTestEngine(t *testing.T, c Components) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), c, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func scenarioPrefs() features.Preferences {
	return features.Preferences{
		PersonalityTraits: "Extraversion",
		TourismCategory:   "Adrenaline Activities",
	}
}

func TestNewEngine_Validation(t *testing.T) {
	t.Parallel()

	wide := identityScaler(t, 3)

	tests := []struct {
		name    string
		modify  func(*Components)
		wantErr error
	}{
		{"missing schema", func(c *Components) { c.Schema = nil }, ErrSchemaUnavailable},
		{"missing scaler", func(c *Components) { c.Scaler = nil }, nil},
		{"missing classifier", func(c *Components) { c.Classifier = nil }, ErrClassifierUnavailable},
		{"unloaded classifier", func(c *Components) { c.Classifier = (*classifier.MLP)(nil) }, ErrClassifierUnavailable},
		{"missing directory", func(c *Components) { c.Directory = nil }, nil},
		{"scaler width", func(c *Components) { c.Scaler = wide }, ErrShapeMismatch},
		{"classifier width", func(c *Components) { c.Classifier = &mockClassifier{width: 5} }, ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := scenarioComponents(t)
			tt.modify(&c)

			e, err := NewEngine(nil, c, zerolog.Nop())
			if !errors.Is(err, ErrEngineInitFailed) {
				t.Fatalf("NewEngine() error = %v, want ErrEngineInitFailed", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("NewEngine() error = %v, want wrapped %v", err, tt.wantErr)
			}
			if e != nil {
				t.Error("NewEngine() returned an engine alongside an error")
			}
		})
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Limits.MaxK = 0
	if _, err := NewEngine(cfg, scenarioComponents(t), zerolog.Nop()); !errors.Is(err, ErrEngineInitFailed) {
		t.Errorf("NewEngine() error = %v, want ErrEngineInitFailed", err)
	}
}

func TestEngine_ScenarioA(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, scenarioComponents(t))
	recs := e.Recommend(context.Background(), scenarioPrefs(), 5)

	if len(recs) != 2 {
		t.Fatalf("len(Recommend()) = %d, want 2: %+v", len(recs), recs)
	}
	for i, want := range []string{"Sky Deck KL Tower", "Batu Caves"} {
		if recs[i].Name != want || recs[i].Location != want {
			t.Errorf("recs[%d] name/location = %q/%q, want %q", i, recs[i].Name, recs[i].Location, want)
		}
		if recs[i].Group != scenarioGroup {
			t.Errorf("recs[%d].Group = %q, want %q", i, recs[i].Group, scenarioGroup)
		}
		if recs[i].PersonalityMatch != "Extraversion" || recs[i].Category != "Adrenaline Activities" {
			t.Errorf("recs[%d] echoes = %q/%q", i, recs[i].PersonalityMatch, recs[i].Category)
		}
	}
	if recs[0].PlaceID != "ChIJ-sky" || recs[1].PlaceID != "" {
		t.Errorf("place ids = %q, %q", recs[0].PlaceID, recs[1].PlaceID)
	}
}

func TestEngine_ScenarioB(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, scenarioComponents(t))
	got := e.SimilarLocations(context.Background(), "Sky Deck KL Tower", 1)

	if !reflect.DeepEqual(got, []string{"Batu Caves"}) {
		t.Errorf("SimilarLocations() = %v, want [Batu Caves]", got)
	}
}

func TestEngine_SimilarLocations_ExcludesQuery(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, scenarioComponents(t))
	ctx := context.Background()

	for _, name := range []string{"Sky Deck KL Tower", "Batu Caves", "Nowhere"} {
		for k := 0; k <= 3; k++ {
			got := e.SimilarLocations(ctx, name, k)
			if got == nil {
				t.Fatalf("SimilarLocations(%q, %d) returned nil", name, k)
			}
			if len(got) > k {
				t.Errorf("SimilarLocations(%q, %d) returned %d names", name, k, len(got))
			}
			for _, n := range got {
				if n == name {
					t.Errorf("SimilarLocations(%q, %d) includes the query", name, k)
				}
			}
		}
	}
}

func TestEngine_TruncationLaw(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, scenarioComponents(t))
	ctx := context.Background()

	for k := -2; k <= 4; k++ {
		want := k
		if want < 0 {
			want = 0
		}
		if want > 2 {
			want = 2
		}
		if got := len(e.Recommend(ctx, scenarioPrefs(), k)); got != want {
			t.Errorf("len(Recommend(k=%d)) = %d, want %d", k, got, want)
		}
	}
}

func TestEngine_Determinism(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, scenarioComponents(t))
	ctx := context.Background()
	prefs := scenarioPrefs()
	prefs.TravelMotivation = features.Optional("Thrill")

	first := e.Recommend(ctx, prefs, 5)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := e.Recommend(ctx, prefs, 5); !reflect.DeepEqual(got, first) {
				t.Errorf("Recommend() = %+v, want %+v", got, first)
			}
		}()
	}
	wg.Wait()
}

func TestEngine_OptionalFieldPropagation(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, scenarioComponents(t))
	ctx := context.Background()

	tests := []struct {
		name       string
		motivation *string
		concerns   *string
	}{
		{"neither", nil, nil},
		{"motivation only", features.Optional("Thrill"), nil},
		{"concerns only", nil, features.Optional("Safety")},
		{"both", features.Optional("Thrill"), features.Optional("Safety")},
		{"empty strings still count as supplied", features.Optional(""), features.Optional("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			prefs := scenarioPrefs()
			prefs.TravelMotivation = tt.motivation
			prefs.TravellingConcerns = tt.concerns

			recs := e.Recommend(ctx, prefs, 5)
			if len(recs) == 0 {
				t.Fatal("expected recommendations")
			}
			for i, r := range recs {
				if (r.Motivation != nil) != (tt.motivation != nil) {
					t.Errorf("recs[%d].Motivation presence = %v, want %v", i, r.Motivation != nil, tt.motivation != nil)
				}
				if (r.Concerns != nil) != (tt.concerns != nil) {
					t.Errorf("recs[%d].Concerns presence = %v, want %v", i, r.Concerns != nil, tt.concerns != nil)
				}
				if tt.motivation != nil && *r.Motivation != *tt.motivation {
					t.Errorf("recs[%d].Motivation = %q, want %q", i, *r.Motivation, *tt.motivation)
				}
			}
		})
	}
}

func TestEngine_Evaluate_Faults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		modify     func(*Components)
		wantStage  Stage
		wantErr    error
		wantStatus string
	}{
		{
			name:       "unknown group id",
			modify:     func(c *Components) { c.Classifier = &mockClassifier{width: 2, id: 9} },
			wantStage:  StageResolve,
			wantErr:    ErrUnknownGroup,
			wantStatus: StatusUnknownGroup,
		},
		{
			name: "classifier unavailable",
			modify: func(c *Components) {
				c.Classifier = &mockClassifier{width: 2, err: ErrClassifierUnavailable}
			},
			wantStage:  StageClassify,
			wantErr:    ErrClassifierUnavailable,
			wantStatus: StatusClassifierUnavailable,
		},
		{
			name: "scaler shape fault",
			modify: func(c *Components) {
				c.Scaler = &mockScaler{width: 2, err: fmt.Errorf("%w: stale", ErrShapeMismatch)}
			},
			wantStage:  StageScale,
			wantErr:    ErrShapeMismatch,
			wantStatus: StatusShapeMismatch,
		},
		{
			name: "scaler changes width",
			modify: func(c *Components) {
				c.Scaler = &mockScaler{width: 2, out: []float64{1}}
			},
			wantStage:  StageScale,
			wantErr:    ErrShapeMismatch,
			wantStatus: StatusShapeMismatch,
		},
		{
			name:       "unexpected classifier error",
			modify:     func(c *Components) { c.Classifier = &mockClassifier{width: 2, err: errors.New("disk on fire")} },
			wantStage:  StageClassify,
			wantStatus: StatusInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := scenarioComponents(t)
			tt.modify(&c)
			e := newTestEngine(t, c)

			out := e.Evaluate(context.Background(), scenarioPrefs(), 5)
			if out.Stage != tt.wantStage {
				t.Errorf("Stage = %v, want %v", out.Stage, tt.wantStage)
			}
			if out.Err == nil {
				t.Fatal("Err = nil, want fault")
			}
			if tt.wantErr != nil && !errors.Is(out.Err, tt.wantErr) {
				t.Errorf("Err = %v, want %v", out.Err, tt.wantErr)
			}
			if out.Status() != tt.wantStatus {
				t.Errorf("Status() = %q, want %q", out.Status(), tt.wantStatus)
			}
			if out.Recommendations == nil || len(out.Recommendations) != 0 {
				t.Errorf("Recommendations = %#v, want empty non-nil", out.Recommendations)
			}

			// The public boundary hides the fault.
			recs := e.Recommend(context.Background(), scenarioPrefs(), 5)
			if recs == nil || len(recs) != 0 {
				t.Errorf("Recommend() = %#v, want empty non-nil", recs)
			}
		})
	}
}

func TestEngine_UnknownPreferencesLandInEmptyGroup(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, scenarioComponents(t))
	prefs := features.Preferences{
		PersonalityTraits: "Extraversion",
		TourismCategory:   "Underwater Basket Weaving",
	}

	out := e.Evaluate(context.Background(), prefs, 5)
	if out.Err != nil {
		t.Fatalf("Err = %v, want nil", out.Err)
	}
	if out.Status() != StatusEmptyGroup {
		t.Errorf("Status() = %q, want %q", out.Status(), StatusEmptyGroup)
	}
	if out.Group != "Introversion_Culture_Cost" {
		t.Errorf("Group = %q", out.Group)
	}
	if len(out.Recommendations) != 0 {
		t.Errorf("Recommendations = %+v, want none", out.Recommendations)
	}
}

func TestEngine_RecoversFromPanics(t *testing.T) {
	t.Parallel()

	c := scenarioComponents(t)
	c.Directory = mockPanicDirectory{Directory: c.Directory}
	e := newTestEngine(t, c)
	obs := &recordingObserver{}
	e.SetObserver(obs)

	recs := e.Recommend(context.Background(), scenarioPrefs(), 5)
	if recs == nil || len(recs) != 0 {
		t.Errorf("Recommend() = %#v, want empty non-nil", recs)
	}
	if len(obs.statuses) != 1 || obs.statuses[0] != StatusInternal {
		t.Errorf("observer statuses = %v, want [%s]", obs.statuses, StatusInternal)
	}
}

func TestEngine_Observer(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, scenarioComponents(t))
	obs := &recordingObserver{}
	e.SetObserver(obs)
	ctx := logging.ContextWithRequestID(context.Background(), "req-123")

	e.Recommend(ctx, scenarioPrefs(), 5)
	e.Recommend(ctx, features.Preferences{PersonalityTraits: "x", TourismCategory: "y"}, 5)
	e.SimilarLocations(ctx, "Sky Deck KL Tower", 5)
	e.SimilarLocations(ctx, "Nowhere", 5)

	if want := []string{StatusOK, StatusEmptyGroup}; !reflect.DeepEqual(obs.statuses, want) {
		t.Errorf("statuses = %v, want %v", obs.statuses, want)
	}
	if want := []bool{true, false}; !reflect.DeepEqual(obs.similar, want) {
		t.Errorf("similar = %v, want %v", obs.similar, want)
	}

	// A nil observer restores the no-op.
	e.SetObserver(nil)
	e.Recommend(ctx, scenarioPrefs(), 5)
}

func TestEngine_ManifestAndConfig(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, scenarioComponents(t))
	m := e.Manifest()
	if m.FeatureCount != 2 || m.GroupCount != 2 || m.LocationCount != 2 {
		t.Errorf("Manifest() = %+v", m)
	}
	if m.LoadedAt.IsZero() {
		t.Error("Manifest().LoadedAt is zero")
	}

	cfg := e.Config()
	cfg.Limits.MaxK = 1
	if e.Config().Limits.MaxK == 1 {
		t.Error("Config() exposed internal state")
	}
}

func TestStage_String(t *testing.T) {
	t.Parallel()

	tests := map[Stage]string{
		StageEncode:   "encode",
		StageScale:    "scale",
		StageClassify: "classify",
		StageResolve:  "resolve",
		StageDone:     "done",
		Stage(42):     "unknown",
	}
	for stage, want := range tests {
		if got := stage.String(); got != want {
			t.Errorf("Stage(%d).String() = %q, want %q", stage, got, want)
		}
	}
}
