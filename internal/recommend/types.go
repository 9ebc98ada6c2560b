// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package recommend

import (
	"errors"
	"time"

	"github.com/tomtom215/timelytourist/internal/recommend/directory"
	"github.com/tomtom215/timelytourist/internal/recommend/features"
)

// Recommendation is one recommended location.
type Recommendation struct {
	// Name is the location name.
	Name string `json:"name"`

	// Location duplicates Name for older consumers.
	Location string `json:"location"`

	// PlaceID is the external place reference, when known.
	PlaceID string `json:"place_id,omitempty"`

	// Group is the predicted group label.
	Group string `json:"group"`

	// PersonalityMatch echoes the requested personality trait.
	PersonalityMatch string `json:"personality_match"`

	// Category echoes the requested tourism category.
	Category string `json:"category"`

	// Motivation echoes the travel motivation, present only if supplied.
	Motivation *string `json:"motivation,omitempty"`

	// Concerns echoes the travelling concerns, present only if supplied.
	Concerns *string `json:"concerns,omitempty"`
}

// Stage is the pipeline step an Outcome reached.
type Stage int

const (
	// StageEncode builds the feature vector.
	StageEncode Stage = iota
	// StageScale standardizes the vector.
	StageScale
	// StageClassify predicts a group id.
	StageClassify
	// StageResolve maps the group id to its label and locations.
	StageResolve
	// StageDone means the pipeline completed.
	StageDone
)

// String returns a human-readable name for the stage.
func (s Stage) String() string {
	switch s {
	case StageEncode:
		return "encode"
	case StageScale:
		return "scale"
	case StageClassify:
		return "classify"
	case StageResolve:
		return "resolve"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Outcome is the typed result of one pipeline run.
type Outcome struct {
	// Stage is the last stage reached. StageDone when Err is nil.
	Stage Stage

	// Err is the fault that stopped the pipeline, if any.
	Err error

	// GroupID is the classifier output. Valid from StageResolve onward.
	GroupID int

	// Group is the resolved group label. Empty unless Stage is StageDone.
	Group string

	// Available is the number of locations in the predicted group.
	Available int

	// Recommendations is never nil.
	Recommendations []Recommendation

	// Duration is the pipeline wall time.
	Duration time.Duration
}

// Status labels for outcomes, used in logs and metrics.
const (
	StatusOK                    = "ok"
	StatusEmptyGroup            = "empty_group"
	StatusSchemaUnavailable     = "schema_unavailable"
	StatusShapeMismatch         = "shape_mismatch"
	StatusClassifierUnavailable = "classifier_unavailable"
	StatusUnknownGroup          = "unknown_group"
	StatusInternal              = "internal_error"
)

// Status classifies the outcome into one of the Status constants.
//
//nolint:gocritic // value receiver keeps Outcome immutable
func (o Outcome) Status() string {
	switch {
	case o.Err == nil && o.Available == 0:
		return StatusEmptyGroup
	case o.Err == nil:
		return StatusOK
	case errors.Is(o.Err, ErrSchemaUnavailable):
		return StatusSchemaUnavailable
	case errors.Is(o.Err, ErrShapeMismatch):
		return StatusShapeMismatch
	case errors.Is(o.Err, ErrClassifierUnavailable):
		return StatusClassifierUnavailable
	case errors.Is(o.Err, ErrUnknownGroup):
		return StatusUnknownGroup
	default:
		return StatusInternal
	}
}

// Scaler standardizes an encoded vector.
type Scaler interface {
	Width() int
	Transform(x []float64) ([]float64, error)
}

// Classifier maps a scaled vector to a group id.
type Classifier interface {
	InputWidth() int
	Predict(x []float64) (int, error)
}

// Directory resolves group ids and looks up locations.
type Directory interface {
	ResolveLabel(id int) (string, error)
	LocationsFor(label string) []directory.Location
	SimilarTo(name string, k int) []directory.Location
	GroupCount() int
	LocationCount() int
}

// Components are the loaded artifacts an Engine is built from.
type Components struct {
	Schema     *features.Schema
	Scaler     Scaler
	Classifier Classifier
	Directory  Directory
}

// ArtifactInfo identifies one loaded artifact.
type ArtifactInfo struct {
	Kind     string    `json:"kind"`
	Version  int       `json:"version"`
	Checksum string    `json:"checksum"`
	BuiltAt  time.Time `json:"built_at"`
}

// Manifest describes what the engine is serving.
type Manifest struct {
	Artifacts     []ArtifactInfo `json:"artifacts,omitempty"`
	FeatureCount  int            `json:"feature_count"`
	GroupCount    int            `json:"group_count"`
	LocationCount int            `json:"location_count"`
	LoadedAt      time.Time      `json:"loaded_at"`
}

// Observer receives per-request results, typically for metrics.
type Observer interface {
	ObserveRecommendation(status string, returned int, d time.Duration)
	ObserveSimilar(found bool, returned int, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveRecommendation(string, int, time.Duration) {}
func (nopObserver) ObserveSimilar(bool, int, time.Duration)          {}
