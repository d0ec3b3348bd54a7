package notification

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// EventTrade is the SSE event name of trade notifications.
const EventTrade = "trade.notification"

var (
	ErrClientNotFound = errors.New("SSE client not found")
	ErrChannelFull    = errors.New("SSE message channel full")
)

// Notification is a rendered status message for one participant.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	Participant uuid.UUID `json:"participant"`
	Key         string    `json:"key"`
	Args        []any     `json:"args,omitempty"`
	Locale      string    `json:"locale"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SSEClient represents an active SSE connection of a participant.
type SSEClient struct {
	ClientID    string
	Participant uuid.UUID
	Locale      string
	ConnectedAt time.Time
	MessageChan chan *SSEMessage
}

// NewSSEClient creates a new SSE client
func NewSSEClient(clientID string, participant uuid.UUID, locale string) *SSEClient {
	return &SSEClient{
		ClientID:    clientID,
		Participant: participant,
		Locale:      locale,
		ConnectedAt: time.Now().UTC(),
		MessageChan: make(chan *SSEMessage, 100),
	}
}

// Close closes the client's message channel
func (c *SSEClient) Close() {
	close(c.MessageChan)
}

// SSEMessage represents a message to be sent via SSE
type SSEMessage struct {
	ID        string          `json:"id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Retry     *int            `json:"retry,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewSSEMessage creates a new SSE message
func NewSSEMessage(event string, data json.RawMessage) *SSEMessage {
	return &SSEMessage{
		ID:        uuid.New().String(),
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}
