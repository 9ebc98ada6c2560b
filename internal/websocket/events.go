// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package websocket

import (
	"context"
	"errors"

	"github.com/goccy/go-json"

	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/recommend"
	"github.com/tomtom215/timelytourist/internal/validation"
)

// RecommendationsData is the payload of a recommendations frame.
type RecommendationsData struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// SimilarLocationsData is the payload of a similar_locations frame.
type SimilarLocationsData struct {
	Location string   `json:"location"`
	Similar  []string `json:"similar"`
}

// ErrorData is the payload of an error frame. Recommendations is always
// an empty list so clients can render the frame like an empty result.
type ErrorData struct {
	Error           string                     `json:"error"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

func errorMessage(id json.RawMessage, msg string) Message {
	return Message{
		Type: MessageTypeError,
		ID:   id,
		Data: ErrorData{Error: msg, Recommendations: []recommend.Recommendation{}},
	}
}

// eventLabel bounds the metric label set to known event types.
func eventLabel(t string) string {
	switch t {
	case MessageTypeGetRecommendations, MessageTypeGetSimilarLocations, MessageTypePing:
		return t
	default:
		return "unknown"
	}
}

// dispatch answers one inbound event. It always returns a reply.
func (h *Hub) dispatch(ctx context.Context, msg *InboundMessage) Message {
	switch msg.Type {
	case MessageTypePing:
		return Message{Type: MessageTypePong, ID: msg.ID}
	case MessageTypeGetRecommendations:
		return h.handleRecommendations(ctx, msg)
	case MessageTypeGetSimilarLocations:
		return h.handleSimilar(ctx, msg)
	default:
		logging.Ctx(ctx).Debug().Str("type", logging.Clip(msg.Type)).Msg("unknown websocket event")
		return errorMessage(msg.ID, "unknown event type: "+logging.Clip(msg.Type))
	}
}

func (h *Hub) handleRecommendations(ctx context.Context, msg *InboundMessage) Message {
	if h.engine == nil {
		return errorMessage(msg.ID, "recommendation engine unavailable")
	}

	var req validation.RecommendationRequest
	if err := decodeData(msg.Data, &req); err != nil {
		return errorMessage(msg.ID, "invalid data: "+err.Error())
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return errorMessage(msg.ID, verr.ToAPIError().Message)
	}
	k, verr := validation.ResolveK(req.NumRecommendations, h.opts.DefaultK, h.opts.MaxK)
	if verr != nil {
		return errorMessage(msg.ID, verr.ToAPIError().Message)
	}

	recs := h.engine.Recommend(ctx, req.Preferences(), k)
	return Message{
		Type: MessageTypeRecommendations,
		ID:   msg.ID,
		Data: RecommendationsData{Recommendations: recs},
	}
}

func (h *Hub) handleSimilar(ctx context.Context, msg *InboundMessage) Message {
	if h.engine == nil {
		return errorMessage(msg.ID, "recommendation engine unavailable")
	}

	var req validation.SimilarLocationsRequest
	if err := decodeData(msg.Data, &req); err != nil {
		return errorMessage(msg.ID, "invalid data: "+err.Error())
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return errorMessage(msg.ID, verr.ToAPIError().Message)
	}
	k, verr := validation.ResolveK(req.NumRecommendations, h.opts.DefaultK, h.opts.MaxK)
	if verr != nil {
		return errorMessage(msg.ID, verr.ToAPIError().Message)
	}

	return Message{
		Type: MessageTypeSimilarLocations,
		ID:   msg.ID,
		Data: SimilarLocationsData{
			Location: req.LocationName,
			Similar:  h.engine.SimilarLocations(ctx, req.LocationName, k),
		},
	}
}

var errMissingData = errors.New("data is required")

func decodeData(raw json.RawMessage, target interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return errMissingData
	}
	return json.Unmarshal(raw, target)
}
