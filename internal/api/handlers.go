// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package api

import (
	"context"
	"time"

	"github.com/tomtom215/timelytourist/internal/config"
	"github.com/tomtom215/timelytourist/internal/recommend/registry"
	ws "github.com/tomtom215/timelytourist/internal/websocket"
)

// maxRequestBodyBytes caps JSON request bodies.
const maxRequestBodyBytes = 64 * 1024

// Engine is the recommendation surface the handlers serve.
type Engine = ws.Recommender

// ActivationHistory lists past engine activations, newest first.
type ActivationHistory interface {
	History(ctx context.Context, limit int) ([]registry.Activation, error)
}

// Handler serves the HTTP API.
type Handler struct {
	config    *config.Config
	engine    Engine
	history   ActivationHistory
	wsHub     *ws.Hub
	startTime time.Time
	version   string
}

// HandlerOptions are the optional collaborators of a Handler.
type HandlerOptions struct {
	History ActivationHistory
	Hub     *ws.Hub
	Version string
}

// NewHandler creates a handler. A nil cfg uses the configuration defaults.
func NewHandler(cfg *config.Config, engine Engine, opts HandlerOptions) *Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Handler{
		config:    cfg,
		engine:    engine,
		history:   opts.History,
		wsHub:     opts.Hub,
		startTime: time.Now(),
		version:   opts.Version,
	}
}
