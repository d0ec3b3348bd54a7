package memory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barterhub/barterhub/internal/clock"
	"github.com/barterhub/barterhub/internal/domain/trade"
)

var start = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestWorld(t *testing.T) (*World, uuid.UUID) {
	t.Helper()
	w := NewWorld(clock.NewFake(start), zerolog.Nop())
	id, err := w.Register("Alice", trade.Presence{Online: true, Visible: true, World: "overworld", X: 1, Y: 64, Z: 2})
	require.NoError(t, err)
	return w, id
}

func TestWorld_Register(t *testing.T) {
	w, id := newTestWorld(t)

	_, err := w.Register("alice", trade.Presence{})
	assert.ErrorIs(t, err, ErrNameTaken)
	_, err = w.Register("  ", trade.Presence{})
	assert.ErrorIs(t, err, ErrInvalidName)

	found, ok := w.Lookup("ALICE")
	require.True(t, ok)
	assert.Equal(t, id, found)
	assert.Equal(t, "Alice", w.DisplayName(id))

	presence, ok := w.Presence(id)
	require.True(t, ok)
	assert.Equal(t, "overworld", presence.World)
}

func TestWorld_AddItemsMergesAndOverflows(t *testing.T) {
	w, id := newTestWorld(t)

	left := w.AddItems(id, trade.ItemStack{Type: "stone", Amount: 40}, trade.ItemStack{Type: "stone", Amount: 40})
	assert.Empty(t, left)

	info, err := w.Participant(id)
	require.NoError(t, err)
	assert.Equal(t, trade.ItemStack{Type: "stone", Amount: 64}, info.Storage[0])
	assert.Equal(t, trade.ItemStack{Type: "stone", Amount: 16}, info.Storage[1])

	for i := 2; i < StorageSize; i++ {
		require.NoError(t, w.SetStack(id, i, trade.ItemStack{Type: "dirt", Amount: 64}))
	}
	left = w.AddItems(id, trade.ItemStack{Type: "stone", Amount: 50}, trade.ItemStack{Type: "sand", Amount: 3})
	assert.Equal(t, []trade.ItemStack{{Type: "stone", Amount: 2}, {Type: "sand", Amount: 3}}, left)
}

func TestWorld_TakeAndRestore(t *testing.T) {
	w, id := newTestWorld(t)
	require.NoError(t, w.SetStack(id, 4, trade.ItemStack{Type: "gold", Amount: 2}))

	stack, err := w.TakeStack(id, 4)
	require.NoError(t, err)
	assert.Equal(t, trade.ItemStack{Type: "gold", Amount: 2}, stack)

	_, err = w.TakeStack(id, 4)
	assert.ErrorIs(t, err, ErrEmptyPosition)
	_, err = w.TakeStack(id, StorageSize)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	w.RestoreStack(id, 4, stack)
	info, _ := w.Participant(id)
	assert.Equal(t, stack, info.Storage[4])
}

func TestWorld_DropAndPickup(t *testing.T) {
	w, alice := newTestWorld(t)
	bob, err := w.Register("Bob", trade.Presence{Online: true})
	require.NoError(t, err)

	tag := trade.OwnerTag{Owner: alice, DroppedAt: start}
	w.Drop(alice, trade.ItemStack{Type: "gold", Amount: 5}, tag)

	ground := w.Ground()
	require.Len(t, ground, 1)
	assert.Equal(t, "overworld", ground[0].World)
	assert.Equal(t, 1.0, ground[0].X)
	require.NotNil(t, ground[0].Tag)
	assert.Equal(t, tag, *ground[0].Tag)

	w.SetPickupGuard(func(picker uuid.UUID, tag *trade.OwnerTag) bool {
		return tag == nil || tag.Owner == picker
	})

	_, err = w.Pickup(bob, ground[0].ID)
	assert.ErrorIs(t, err, ErrPickupDenied)

	picked, err := w.Pickup(alice, ground[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 5, picked.Amount)
	assert.Empty(t, w.Ground())

	_, err = w.Pickup(alice, ground[0].ID)
	assert.ErrorIs(t, err, ErrGroundItemNotFound)
}

func TestWorld_Views(t *testing.T) {
	w, id := newTestWorld(t)
	sessionID := uuid.New()

	w.OpenView(id, sessionID)
	info, _ := w.Participant(id)
	assert.Equal(t, sessionID, info.View)

	w.CloseView(id)
	info, _ = w.Participant(id)
	assert.Equal(t, uuid.Nil, info.View)

	w.SetHeldItem(id, trade.ItemStack{Type: "apple", Amount: 1})
	assert.Equal(t, "apple", w.HeldItem(id).Type)
}
