package notification

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_hub.go -package=mocks . SSEHub

import "github.com/google/uuid"

// SSEHub defines the interface for managing SSE connections
type SSEHub interface {
	Register(client *SSEClient)
	Unregister(clientID string)
	ClientCount() int

	BroadcastToAll(message *SSEMessage)
	// SendToParticipant delivers to every connection of the participant.
	SendToParticipant(participant uuid.UUID, message *SSEMessage) error

	Stop()
}
