package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Event types broadcast to connected map clients.
const (
	EventPointCreated    = "point_created"
	EventPointUpdated    = "point_updated"
	EventPointDeleted    = "point_deleted"
	EventFriendCreated   = "friend_created"
	EventPostcardCreated = "postcard_created"
	EventPostcardDeleted = "postcard_deleted"
	EventPostcardLiked   = "postcard_liked"
)

// Event is the message sent over the websocket change feed
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// EventHub broadcasts entity change events to all connected clients. The
// feed is broadcast-only; clients never send application messages.
type EventHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewEventHub creates a new event hub
func NewEventHub() *EventHub {
	return &EventHub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Register adds a client connection to the hub
func (h *EventHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
	log.Info().Int("clients", len(h.conns)).Msg("WebSocket client connected")
}

// Unregister removes a client connection and closes it
func (h *EventHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.conns[conn]; exists {
		conn.Close()
		delete(h.conns, conn)
		log.Info().Int("clients", len(h.conns)).Msg("WebSocket client disconnected")
	}
}

// ClientCount returns the number of connected clients
func (h *EventHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast sends an event to every connected client. Clients whose
// connection fails mid-write are dropped from the hub.
func (h *EventHub) Broadcast(eventType string, data interface{}) {
	payload, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to marshal event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn().Err(err).Str("type", eventType).Msg("Dropping websocket client")
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
