// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package websocket

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBufferSize = 256
)

// clientIDCounter orders clients for deterministic broadcast.
var clientIDCounter atomic.Uint64

// Client is one WebSocket connection with its read and write pumps.
type Client struct {
	id       uint64
	clientID string
	hub      *Hub
	conn     *websocket.Conn
	limiter  *rate.Limiter

	sendMu sync.Mutex
	send   chan Message
	closed bool
}

// NewClient wraps conn for hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:       clientIDCounter.Add(1),
		clientID: logging.GenerateClientID(),
		hub:      hub,
		conn:     conn,
		limiter:  hub.opts.newLimiter(),
		send:     make(chan Message, sendBufferSize),
	}
}

// ID returns the ordering id.
func (c *Client) ID() uint64 {
	return c.id
}

// ClientID returns the id used in logs.
func (c *Client) ClientID() string {
	return c.clientID
}

// trySend queues msg without blocking. It reports false when the buffer
// is full or the client is already closed.
func (c *Client) trySend(msg Message) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel once, which makes writePump send a
// close frame and exit.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.Unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	logger := logging.With().Str("client_id", c.clientID).Logger()
	base := logging.ContextWithClientID(context.Background(), c.clientID)

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				metrics.RecordWSError("unexpected_close")
				logger.Warn().Err(err).Msg("unexpected websocket close")
			}
			return
		}

		var msg InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			metrics.RecordWSError("invalid_frame")
			c.reply(errorMessage(nil, "invalid message: expected {type, id, data}"))
			continue
		}
		metrics.RecordWSEvent(eventLabel(msg.Type))

		if !c.limiter.Allow() {
			metrics.RecordWSError("rate_limited")
			c.reply(errorMessage(msg.ID, "rate limit exceeded"))
			continue
		}

		ctx := logging.ContextWithRequestID(base, logging.GenerateRequestID())
		c.reply(c.hub.dispatch(ctx, &msg))
	}
}

func (c *Client) reply(msg Message) {
	if !c.trySend(msg) {
		metrics.RecordWSError("send_buffer_full")
		logging.Warn().
			Str("client_id", c.clientID).
			Str("message_type", msg.Type).
			Msg("dropping reply, send buffer unavailable")
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}

			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			payload, err := MarshalMessage(message)
			if err != nil {
				metrics.RecordWSError("marshal")
				logging.Error().Err(err).Str("message_type", message.Type).Msg("failed to marshal message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				metrics.RecordWSError("write")
				return
			}
			metrics.WSMessagesSent.Inc()

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start runs the client's pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
