// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/metrics"
	"github.com/tomtom215/timelytourist/internal/recommend"
	"github.com/tomtom215/timelytourist/internal/recommend/features"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline means the context deadline was exceeded.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication.
const (
	MessageTypeGetRecommendations  = "get_recommendations"
	MessageTypeGetSimilarLocations = "get_similar_locations"
	MessageTypePing                = "ping"

	MessageTypeRecommendations  = "recommendations"
	MessageTypeSimilarLocations = "similar_locations"
	MessageTypePong             = "pong"
	MessageTypeError            = "error"
	MessageTypeEngineReady      = "engine_ready"
	MessageTypeServerShutdown   = "server_shutdown"
)

// Message is an outbound frame. ID echoes the id of the request it answers.
type Message struct {
	Type string          `json:"type"`
	ID   json.RawMessage `json:"id,omitempty"`
	Data interface{}     `json:"data"`
}

// InboundMessage is a frame received from a client.
type InboundMessage struct {
	Type string          `json:"type"`
	ID   json.RawMessage `json:"id,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Recommender is the engine surface the hub dispatches events to.
type Recommender interface {
	Recommend(ctx context.Context, prefs features.Preferences, k int) []recommend.Recommendation
	SimilarLocations(ctx context.Context, name string, k int) []string
	Manifest() recommend.Manifest
}

// Options configures event handling for every client of a hub.
type Options struct {
	// DefaultK applies when an event omits num_recommendations.
	DefaultK int

	// MaxK is the largest accepted num_recommendations.
	MaxK int

	// EventsPerSecond limits inbound events per client. Zero disables it.
	EventsPerSecond float64

	// Burst is the limiter bucket size.
	Burst int
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{DefaultK: 5, MaxK: 50, EventsPerSecond: 10, Burst: 20}
}

func (o Options) newLimiter() *rate.Limiter {
	if o.EventsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := o.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(o.EventsPerSecond), burst)
}

// Hub tracks connected clients and owns broadcast delivery.
type Hub struct {
	engine     Recommender
	opts       Options
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	doneOnce   sync.Once
	mu         sync.RWMutex
}

// NewHub creates a hub that answers client events with engine.
func NewHub(engine Recommender, opts Options) *Hub {
	return &Hub{
		engine:     engine,
		opts:       opts,
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// RunWithContext processes registrations and broadcasts until ctx is done.
// On shutdown every client receives a server_shutdown frame and is closed.
//
// Selection is prioritized: shutdown first, then client lifecycle, then
// broadcasts, so client state is settled before a message fans out.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	if h.engine != nil {
		client.trySend(Message{Type: MessageTypeEngineReady, Data: h.engine.Manifest()})
	}
	logging.Info().
		Str("client_id", client.clientID).
		Int("total_clients", total).
		Msg("websocket client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	client.closeSend()
	metrics.WSConnections.Dec()
	logging.Info().
		Str("client_id", client.clientID).
		Int("total_clients", total).
		Msg("websocket client disconnected")
}

// shutdown notifies and closes every client. Context cancellation is the
// expected path, so it is not logged as an error.
func (h *Hub) shutdown(ctx context.Context) {
	h.doneOnce.Do(func() { close(h.done) })

	notice := Message{Type: MessageTypeServerShutdown, Data: map[string]string{"reason": string(getShutdownReason(ctx))}}
	clients := h.sortedClients()
	for _, c := range clients {
		c.trySend(notice)
	}
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", len(clients)).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClients returns clients in id order for deterministic delivery.
func (h *Hub) sortedClients() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// broadcastToClients delivers message to every client. Clients whose send
// buffer is full are dropped.
func (h *Hub) broadcastToClients(message Message) {
	for _, client := range h.sortedClients() {
		if !client.trySend(message) {
			metrics.RecordWSError("slow_client")
			h.removeClient(client)
		}
	}
}

func (h *Hub) closeAllClients() {
	for _, client := range h.sortedClients() {
		h.removeClient(client)
	}
}

// BroadcastJSON queues a message for every connected client.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
	default:
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// MarshalMessage converts a message to JSON.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
