// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/recommend/features"
)

// Engine runs the preference-to-recommendation pipeline over immutable
// artifacts. It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	schema   *features.Schema
	scaler   Scaler
	model    Classifier
	dir      Directory
	manifest Manifest
	observer Observer
}

// NewEngine validates the components against each other and returns a
// ready engine. Any inconsistency is reported as ErrEngineInitFailed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, c Components, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid config: %w", ErrEngineInitFailed, err)
	}

	if err := validateComponents(c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineInitFailed, err)
	}

	e := &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		schema:   c.Schema,
		scaler:   c.Scaler,
		model:    c.Classifier,
		dir:      c.Directory,
		observer: nopObserver{},
		manifest: Manifest{
			FeatureCount:  c.Schema.Width(),
			GroupCount:    c.Directory.GroupCount(),
			LocationCount: c.Directory.LocationCount(),
			LoadedAt:      time.Now().UTC(),
		},
	}

	return e, nil
}

func validateComponents(c Components) error {
	width := c.Schema.Width()
	if width == 0 {
		return ErrSchemaUnavailable
	}
	if c.Scaler == nil {
		return errors.New("scaler is missing")
	}
	if c.Classifier == nil || c.Classifier.InputWidth() == 0 {
		return ErrClassifierUnavailable
	}
	if c.Directory == nil {
		return errors.New("group directory is missing")
	}
	if got := c.Scaler.Width(); got != width {
		return fmt.Errorf("%w: scaler fitted on %d features, schema has %d", ErrShapeMismatch, got, width)
	}
	if got := c.Classifier.InputWidth(); got != width {
		return fmt.Errorf("%w: classifier expects %d features, schema has %d", ErrShapeMismatch, got, width)
	}
	return nil
}

// SetObserver installs an observer for per-request results. It must be
// called before the engine starts serving.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	e.observer = o
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Manifest describes the loaded artifacts.
func (e *Engine) Manifest() Manifest {
	m := e.manifest
	m.Artifacts = append([]ArtifactInfo(nil), e.manifest.Artifacts...)
	return m
}

// Recommend returns up to k recommendations for prefs. It never fails:
// per-request faults are logged and yield an empty, non-nil slice.
//
//nolint:gocritic // prefs passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, prefs features.Preferences, k int) (recs []Recommendation) {
	logger := e.requestLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Interface("panic", r).
				Str("personality_traits", prefs.PersonalityTraits).
				Str("tourism_category", prefs.TourismCategory).
				Msg("recommendation pipeline panicked")
			e.observer.ObserveRecommendation(StatusInternal, 0, 0)
			recs = []Recommendation{}
		}
	}()

	out := e.Evaluate(ctx, prefs, k)
	status := out.Status()
	e.observer.ObserveRecommendation(status, len(out.Recommendations), out.Duration)

	switch {
	case out.Err != nil:
		logger.Warn().
			Err(out.Err).
			Str("stage", out.Stage.String()).
			Str("status", status).
			Str("personality_traits", prefs.PersonalityTraits).
			Str("tourism_category", prefs.TourismCategory).
			Msg("recommendation unavailable")
	case out.Available == 0:
		logger.Warn().
			Str("group", out.Group).
			Int("group_id", out.GroupID).
			Msg("predicted group has no locations")
	default:
		logger.Debug().
			Str("group", out.Group).
			Int("k", k).
			Int("returned", len(out.Recommendations)).
			Dur("duration", out.Duration).
			Msg("recommendation complete")
	}

	return out.Recommendations
}

// Evaluate runs the pipeline and reports exactly where it stopped.
// Negative k is treated as zero.
//
//nolint:gocritic // prefs passed by value for immutability
func (e *Engine) Evaluate(ctx context.Context, prefs features.Preferences, k int) Outcome {
	start := time.Now()
	out := Outcome{Recommendations: []Recommendation{}}
	finish := func(stage Stage, err error) Outcome {
		out.Stage = stage
		out.Err = err
		out.Duration = time.Since(start)
		return out
	}

	if k < 0 {
		k = 0
	}

	vec, err := e.schema.Encode(prefs)
	if err != nil {
		return finish(StageEncode, err)
	}

	scaled, err := e.scaler.Transform(vec)
	if err != nil {
		return finish(StageScale, err)
	}
	if len(scaled) != len(vec) {
		return finish(StageScale, fmt.Errorf("%w: scaler returned %d values for %d features", ErrShapeMismatch, len(scaled), len(vec)))
	}

	id, err := e.model.Predict(scaled)
	if err != nil {
		return finish(StageClassify, err)
	}
	out.GroupID = id

	label, err := e.dir.ResolveLabel(id)
	if err != nil {
		return finish(StageResolve, err)
	}
	out.Group = label

	locations := e.dir.LocationsFor(label)
	out.Available = len(locations)
	if len(locations) > k {
		locations = locations[:k]
	}

	recs := make([]Recommendation, 0, len(locations))
	for _, loc := range locations {
		rec := Recommendation{
			Name:             loc.Name,
			Location:         loc.Name,
			PlaceID:          loc.PlaceID,
			Group:            label,
			PersonalityMatch: prefs.PersonalityTraits,
			Category:         prefs.TourismCategory,
		}
		if prefs.TravelMotivation != nil {
			rec.Motivation = features.Optional(*prefs.TravelMotivation)
		}
		if prefs.TravellingConcerns != nil {
			rec.Concerns = features.Optional(*prefs.TravellingConcerns)
		}
		recs = append(recs, rec)
	}
	out.Recommendations = recs

	return finish(StageDone, nil)
}

// SimilarLocations returns the names of up to k other locations sharing a
// group with name. Unknown names yield an empty, non-nil slice.
func (e *Engine) SimilarLocations(ctx context.Context, name string, k int) []string {
	start := time.Now()
	locs := e.dir.SimilarTo(name, k)

	names := make([]string, 0, len(locs))
	for _, l := range locs {
		names = append(names, l.Name)
	}

	found := len(names) > 0
	e.observer.ObserveSimilar(found, len(names), time.Since(start))
	if !found {
		logger := e.requestLogger(ctx)
		logger.Debug().
			Str("location", name).
			Int("k", k).
			Msg("no similar locations")
	}
	return names
}

// requestLogger adds the request id from ctx, when present.
func (e *Engine) requestLogger(ctx context.Context) zerolog.Logger {
	if id := logging.RequestIDFromContext(ctx); id != "" {
		return e.logger.With().Str("request_id", id).Logger()
	}
	return e.logger
}
