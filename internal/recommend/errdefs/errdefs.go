// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

// Package errdefs holds the sentinel errors shared by the inference
// components. The recommend package re-exports them; callers should match
// with errors.Is.
package errdefs

import "errors"

var (
	// ErrEngineInitFailed means a required artifact was missing, corrupt, or
	// structurally invalid. No engine is produced.
	ErrEngineInitFailed = errors.New("engine initialization failed")

	// ErrSchemaUnavailable means the feature schema is missing or empty.
	ErrSchemaUnavailable = errors.New("feature schema unavailable")

	// ErrSchemaCollision means two schema entries share an identifier.
	ErrSchemaCollision = errors.New("feature schema collision")

	// ErrShapeMismatch means a vector width does not match the width a
	// transform or model was fitted on.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrClassifierUnavailable means the classifier was used before a model
	// was loaded.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrUnknownGroup means a group id has no label in the label encoder.
	ErrUnknownGroup = errors.New("unknown group")
)
