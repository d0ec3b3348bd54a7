package trade

import (
	"time"

	"github.com/google/uuid"
)

// EventType describes a session lifecycle event.
type EventType string

const (
	EventOpened    EventType = "TRADE_OPENED"
	EventSettled   EventType = "TRADE_SETTLED"
	EventAborted   EventType = "TRADE_ABORTED"
	EventInsolvent EventType = "TRADE_INSOLVENT"
)

// Event is emitted when a session opens or reaches a terminal state. Items and
// Money are what each participant had offered, index-aligned with Participants.
type Event struct {
	Type         EventType      `json:"type"`
	SessionID    uuid.UUID      `json:"sessionId"`
	Participants [2]uuid.UUID   `json:"participants"`
	Initiator    uuid.UUID      `json:"initiator,omitempty"`
	Items        [2][]ItemStack `json:"items"`
	Money        [2]int64       `json:"money"`
	At           time.Time      `json:"at"`
}
