package trade

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_ports.go -package=mocks . Inventory,Economy,Notifier,EventSink,Directory,Storage,ItemFilter

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// OwnerTag marks an item that was put on the ground on behalf of a participant.
type OwnerTag struct {
	Owner     uuid.UUID `json:"owner"`
	DroppedAt time.Time `json:"droppedAt"`
}

// Inventory is the host backend for participant storage and session views.
type Inventory interface {
	DisplayName(participant uuid.UUID) string
	// AddItems stores stacks in the participant's personal storage and returns
	// whatever did not fit.
	AddItems(participant uuid.UUID, stacks ...ItemStack) []ItemStack
	HeldItem(participant uuid.UUID) ItemStack
	SetHeldItem(participant uuid.UUID, stack ItemStack)
	OpenView(participant uuid.UUID, sessionID uuid.UUID)
	CloseView(participant uuid.UUID)
	// Drop places a stack in the world at the participant's location.
	Drop(participant uuid.UUID, stack ItemStack, tag OwnerTag)
}

// Economy is the optional currency backend.
type Economy interface {
	Balance(ctx context.Context, participant uuid.UUID) (int64, error)
	Withdraw(ctx context.Context, participant uuid.UUID, amount int64) error
	Deposit(ctx context.Context, participant uuid.UUID, amount int64) error
	Format(amount int64) string
}

// Message is a localizable notification: a catalog key plus its arguments.
type Message struct {
	Key  string `json:"key"`
	Args []any  `json:"args,omitempty"`
}

// Notifier delivers status messages to participants.
type Notifier interface {
	Notify(participant uuid.UUID, msg Message)
}

// EventSink receives session lifecycle events.
type EventSink interface {
	Publish(evt Event)
}

// Presence is where a participant is and what they are doing.
type Presence struct {
	Online   bool    `json:"online"`
	Visible  bool    `json:"visible"`
	Sleeping bool    `json:"sleeping"`
	World    string  `json:"world"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
}

// DistanceSquared returns the squared distance between two presences.
func (p Presence) DistanceSquared(other Presence) float64 {
	dx, dy, dz := p.X-other.X, p.Y-other.Y, p.Z-other.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance returns the distance between two presences.
func (p Presence) Distance(other Presence) float64 {
	return math.Sqrt(p.DistanceSquared(other))
}

// Directory resolves participant ids to live state at the time of use.
type Directory interface {
	Presence(participant uuid.UUID) (Presence, bool)
	DisplayName(participant uuid.UUID) string
}

// Storage gives access to single positions of a participant's personal storage.
type Storage interface {
	// TakeStack removes and returns the stack at index.
	TakeStack(participant uuid.UUID, index int) (ItemStack, error)
	// RestoreStack puts a stack back at index, merging or overflowing like AddItems.
	RestoreStack(participant uuid.UUID, index int, stack ItemStack)
}

// ItemFilter decides whether a stack may be offered at all.
type ItemFilter interface {
	Blocked(stack ItemStack) bool
}
