// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

// Package logging provides the zerolog-based structured logger shared by
// the server, the recommendation engine, and the ttctl tool.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("groups", n).Msg("engine loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("recommendation unavailable")
//
// # Configuration
//
// Environment variables (read through internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file and line (default: false)
//
// # Request Correlation
//
// HTTP middleware stores a request id in the request context and WebSocket
// clients store their client id. Ctx picks both up:
//
//	ctx = logging.ContextWithRequestID(ctx, id)
//	logging.Ctx(ctx).Info().Msg("handled")
//	// {"level":"info","request_id":"...","message":"handled"}
//
// # Supervisor Integration
//
// Suture v4 logs through log/slog. NewSlogLogger returns an slog.Logger
// whose records are written by zerolog so supervisor events share the
// same format and sink as application logs.
//
// # User Input
//
// Preference values and location names come from clients. Clip bounds
// them before they are attached to log events.
package logging
