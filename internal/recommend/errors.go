// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package recommend

import "github.com/tomtom215/timelytourist/internal/recommend/errdefs"

// Error taxonomy. Match with errors.Is.
var (
	ErrEngineInitFailed      = errdefs.ErrEngineInitFailed
	ErrSchemaUnavailable     = errdefs.ErrSchemaUnavailable
	ErrSchemaCollision       = errdefs.ErrSchemaCollision
	ErrShapeMismatch         = errdefs.ErrShapeMismatch
	ErrClassifierUnavailable = errdefs.ErrClassifierUnavailable
	ErrUnknownGroup          = errdefs.ErrUnknownGroup
)
