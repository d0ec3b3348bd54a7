package memory

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/barterhub/barterhub/internal/clock"
	"github.com/barterhub/barterhub/internal/domain/trade"
)

// StorageSize is the number of positions in a participant's personal storage.
const StorageSize = 36

var (
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrNameTaken          = errors.New("display name already registered")
	ErrInvalidName        = errors.New("display name is required")
	ErrIndexOutOfRange    = errors.New("storage index out of range")
	ErrEmptyPosition      = errors.New("storage position is empty")
	ErrGroundItemNotFound = errors.New("ground item not found")
	ErrPickupDenied       = errors.New("pickup not allowed")
)

// GroundItem is a stack lying in the world.
type GroundItem struct {
	ID    uuid.UUID       `json:"id"`
	World string          `json:"world"`
	X     float64         `json:"x"`
	Y     float64         `json:"y"`
	Z     float64         `json:"z"`
	Stack trade.ItemStack `json:"stack"`
	Tag   *trade.OwnerTag `json:"tag,omitempty"`
}

// ParticipantInfo is a read-only copy of a registered participant.
type ParticipantInfo struct {
	ID       uuid.UUID                    `json:"id"`
	Name     string                       `json:"name"`
	Presence trade.Presence               `json:"presence"`
	Storage  [StorageSize]trade.ItemStack `json:"storage"`
	Held     trade.ItemStack              `json:"held"`
	View     uuid.UUID                    `json:"view"`
}

// PickupGuard decides whether picker may collect an item with the given tag.
// tag is nil for items nobody owns.
type PickupGuard func(picker uuid.UUID, tag *trade.OwnerTag) bool

type participant struct {
	id       uuid.UUID
	name     string
	presence trade.Presence
	storage  [StorageSize]trade.ItemStack
	held     trade.ItemStack
	view     uuid.UUID
}

// World is an in-process host: participants with personal storage, presence
// and an open session view, plus items lying on the ground. It backs the
// trade.Inventory, trade.Directory and trade.Storage ports.
type World struct {
	mu           sync.RWMutex
	participants map[uuid.UUID]*participant
	byName       map[string]uuid.UUID
	ground       map[uuid.UUID]*GroundItem
	guard        PickupGuard
	clock        clock.Clock
	logger       zerolog.Logger
}

// NewWorld creates an empty world.
func NewWorld(c clock.Clock, logger zerolog.Logger) *World {
	if c == nil {
		c = clock.Real()
	}
	return &World{
		participants: make(map[uuid.UUID]*participant),
		byName:       make(map[string]uuid.UUID),
		ground:       make(map[uuid.UUID]*GroundItem),
		clock:        c,
		logger:       logger.With().Str("component", "world").Logger(),
	}
}

// SetPickupGuard installs the pickup policy.
func (w *World) SetPickupGuard(guard PickupGuard) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.guard = guard
}

// Register adds a participant. Names are unique regardless of case.
func (w *World) Register(name string, presence trade.Presence) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, ErrInvalidName
	}
	key := strings.ToLower(name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.byName[key]; ok {
		return uuid.Nil, ErrNameTaken
	}
	p := &participant{id: uuid.New(), name: name, presence: presence}
	w.participants[p.id] = p
	w.byName[key] = p.id
	w.logger.Debug().Str("participant", p.id.String()).Str("name", name).Msg("participant registered")
	return p.id, nil
}

// Lookup finds a participant by display name, ignoring case.
func (w *World) Lookup(name string) (uuid.UUID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	id, ok := w.byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// Participant returns a copy of the participant's state.
func (w *World) Participant(id uuid.UUID) (ParticipantInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.participants[id]
	if !ok {
		return ParticipantInfo{}, ErrUnknownParticipant
	}
	return infoOf(p), nil
}

// Participants lists everyone, ordered by name.
func (w *World) Participants() []ParticipantInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]ParticipantInfo, 0, len(w.participants))
	for _, p := range w.participants {
		out = append(out, infoOf(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func infoOf(p *participant) ParticipantInfo {
	return ParticipantInfo{
		ID:       p.id,
		Name:     p.name,
		Presence: p.presence,
		Storage:  p.storage,
		Held:     p.held,
		View:     p.view,
	}
}

// UpdatePresence applies fn to the participant's presence.
func (w *World) UpdatePresence(id uuid.UUID, fn func(*trade.Presence)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.participants[id]
	if !ok {
		return ErrUnknownParticipant
	}
	fn(&p.presence)
	return nil
}

// Grant gives stacks to a participant and returns what did not fit.
func (w *World) Grant(id uuid.UUID, stacks ...trade.ItemStack) ([]trade.ItemStack, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.participants[id]
	if !ok {
		return nil, ErrUnknownParticipant
	}
	return addAll(p, stacks), nil
}

// Ground lists the items lying in the world.
func (w *World) Ground() []GroundItem {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]GroundItem, 0, len(w.ground))
	for _, item := range w.ground {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// Pickup moves a ground item into the picker's storage. Whatever does not fit
// stays on the ground with its tag.
func (w *World) Pickup(picker, itemID uuid.UUID) (trade.ItemStack, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.participants[picker]
	if !ok {
		return trade.ItemStack{}, ErrUnknownParticipant
	}
	item, ok := w.ground[itemID]
	if !ok {
		return trade.ItemStack{}, ErrGroundItemNotFound
	}
	if w.guard != nil && !w.guard(picker, item.Tag) {
		return trade.ItemStack{}, ErrPickupDenied
	}
	left := addStack(p, item.Stack)
	picked := item.Stack
	picked.Amount -= left.Amount
	if left.IsEmpty() {
		delete(w.ground, itemID)
	} else {
		item.Stack = left
	}
	return picked, nil
}

// DisplayName returns the participant's name, or the id when unknown.
func (w *World) DisplayName(id uuid.UUID) string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if p, ok := w.participants[id]; ok {
		return p.name
	}
	return id.String()
}

// Presence returns where the participant is.
func (w *World) Presence(id uuid.UUID) (trade.Presence, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.participants[id]
	if !ok {
		return trade.Presence{}, false
	}
	return p.presence, true
}

func (w *World) AddItems(id uuid.UUID, stacks ...trade.ItemStack) []trade.ItemStack {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.participants[id]
	if !ok {
		return stacks
	}
	return addAll(p, stacks)
}

func (w *World) HeldItem(id uuid.UUID) trade.ItemStack {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if p, ok := w.participants[id]; ok {
		return p.held
	}
	return trade.ItemStack{}
}

func (w *World) SetHeldItem(id uuid.UUID, stack trade.ItemStack) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.participants[id]; ok {
		p.held = stack
	}
}

func (w *World) OpenView(id, sessionID uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.participants[id]; ok {
		p.view = sessionID
	}
}

func (w *World) CloseView(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.participants[id]; ok {
		p.view = uuid.Nil
	}
}

// Drop puts a stack on the ground at the participant's location.
func (w *World) Drop(id uuid.UUID, stack trade.ItemStack, tag trade.OwnerTag) {
	if stack.IsEmpty() {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	item := &GroundItem{ID: uuid.New(), Stack: stack, Tag: &tag}
	if p, ok := w.participants[id]; ok {
		item.World = p.presence.World
		item.X, item.Y, item.Z = p.presence.X, p.presence.Y, p.presence.Z
	}
	w.ground[item.ID] = item
	w.logger.Debug().Str("participant", id.String()).Str("stack", stack.String()).Msg("item dropped")
}

// SetStack places a stack at a storage position, replacing what was there.
func (w *World) SetStack(id uuid.UUID, index int, stack trade.ItemStack) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.participants[id]
	if !ok {
		return ErrUnknownParticipant
	}
	if index < 0 || index >= StorageSize {
		return ErrIndexOutOfRange
	}
	p.storage[index] = stack
	return nil
}

func (w *World) TakeStack(id uuid.UUID, index int) (trade.ItemStack, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.participants[id]
	if !ok {
		return trade.ItemStack{}, ErrUnknownParticipant
	}
	if index < 0 || index >= StorageSize {
		return trade.ItemStack{}, ErrIndexOutOfRange
	}
	stack := p.storage[index]
	if stack.IsEmpty() {
		return trade.ItemStack{}, ErrEmptyPosition
	}
	p.storage[index] = trade.ItemStack{}
	return stack, nil
}

// RestoreStack puts stack back at index. If the position is taken meanwhile it
// is stored like AddItems, and what does not fit is dropped for the owner.
func (w *World) RestoreStack(id uuid.UUID, index int, stack trade.ItemStack) {
	if stack.IsEmpty() {
		return
	}
	w.mu.Lock()
	p, ok := w.participants[id]
	if !ok {
		w.mu.Unlock()
		return
	}
	var left trade.ItemStack
	if index >= 0 && index < StorageSize && p.storage[index].IsEmpty() {
		p.storage[index] = stack
	} else {
		left = addStack(p, stack)
	}
	w.mu.Unlock()

	if !left.IsEmpty() {
		w.Drop(id, left, trade.OwnerTag{Owner: id, DroppedAt: w.clock.Now()})
	}
}

func addAll(p *participant, stacks []trade.ItemStack) []trade.ItemStack {
	var leftovers []trade.ItemStack
	for _, stack := range stacks {
		if left := addStack(p, stack); !left.IsEmpty() {
			leftovers = append(leftovers, left)
		}
	}
	return leftovers
}

// addStack merges into similar stacks first, then fills empty positions, and
// returns the remainder.
func addStack(p *participant, stack trade.ItemStack) trade.ItemStack {
	if stack.IsEmpty() {
		return trade.ItemStack{}
	}
	for i := range p.storage {
		slot := &p.storage[i]
		if slot.IsEmpty() || !slot.Similar(stack) || slot.Amount >= trade.MaxStackSize {
			continue
		}
		moved := min(trade.MaxStackSize-slot.Amount, stack.Amount)
		slot.Amount += moved
		stack.Amount -= moved
		if stack.Amount == 0 {
			return trade.ItemStack{}
		}
	}
	for i := range p.storage {
		if !p.storage[i].IsEmpty() {
			continue
		}
		moved := min(trade.MaxStackSize, stack.Amount)
		p.storage[i] = trade.ItemStack{Type: stack.Type, Data: stack.Data, Amount: moved}
		stack.Amount -= moved
		if stack.Amount == 0 {
			return trade.ItemStack{}
		}
	}
	return stack
}
