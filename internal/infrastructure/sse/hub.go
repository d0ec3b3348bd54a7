package sse

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/barterhub/barterhub/internal/domain/notification"
)

// Hub manages SSE clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*notification.SSEClient
	logger  zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*notification.SSEClient),
		logger:  logger.With().Str("component", "sse_hub").Logger(),
	}
}

func (h *Hub) Register(client *notification.SSEClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ClientID] = client
	h.logger.Debug().Str("client_id", client.ClientID).Str("participant", client.Participant.String()).Msg("client connected")
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		c.Close()
		delete(h.clients, clientID)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) BroadcastToAll(message *notification.SSEMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		trySend(c, message)
	}
}

func (h *Hub) SendToParticipant(participant uuid.UUID, message *notification.SSEMessage) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	found, full := false, false
	for _, c := range h.clients {
		if c.Participant != participant {
			continue
		}
		found = true
		if !trySend(c, message) {
			full = true
		}
	}
	switch {
	case !found:
		return notification.ErrClientNotFound
	case full:
		return notification.ErrChannelFull
	}
	return nil
}

func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.Close()
		delete(h.clients, id)
	}
}

func trySend(c *notification.SSEClient, msg *notification.SSEMessage) bool {
	select {
	case c.MessageChan <- msg:
		return true
	default:
		return false
	}
}
