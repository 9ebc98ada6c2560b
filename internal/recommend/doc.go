// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

// Package recommend implements the travel destination inference engine.
//
// # Architecture
//
// A request flows through a strict linear pipeline:
//
//	Preferences -> features.Schema.Encode -> Scaler.Transform
//	            -> Classifier.Predict -> Directory.ResolveLabel
//	            -> Directory.LocationsFor -> first k -> []Recommendation
//
// The schema, scaler, classifier, and directory are produced by the offline
// training job and loaded once at startup (see LoadEngine). They are never
// mutated afterward, so the Engine needs no locks and is safe for
// concurrent use.
//
// # Failure Model
//
// Loading is strict. A missing, corrupt, or mutually inconsistent artifact
// makes NewEngine and LoadEngine return ErrEngineInitFailed and no engine;
// the server refuses to start.
//
// Serving is best-effort. Evaluate reports per-request faults as a typed
// Outcome (ErrSchemaUnavailable, ErrShapeMismatch, ErrClassifierUnavailable,
// ErrUnknownGroup) so tests and logs can tell them apart. Recommend, the
// public boundary, collapses every fault to an empty list, logs the cause,
// and notifies the Observer. Callers treat an empty list as "no
// recommendation available".
//
// # Usage
//
//	store, _ := storage.NewStore(cfg.Artifacts.Dir)
//	engine, err := recommend.LoadEngine(ctx, store, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    // errors.Is(err, recommend.ErrEngineInitFailed)
//	    return err
//	}
//
//	recs := engine.Recommend(ctx, features.Preferences{
//	    PersonalityTraits: "Extraversion",
//	    TourismCategory:   "Adrenaline Activities",
//	}, recommend.DefaultK)
//
//	similar := engine.SimilarLocations(ctx, "Sky Deck KL Tower", 5)
//
// # Determinism
//
// The forward pass has no randomness and ties resolve to the lowest class
// index, so a fixed engine returns identical results for identical input.
package recommend
