package trade

import (
	"github.com/samber/lo"
)

// StagedItem is a stack placed at an offer position.
type StagedItem struct {
	Position int       `json:"position"`
	Stack    ItemStack `json:"stack"`
}

// OfferStore holds what one participant currently offers in a session.
type OfferStore struct {
	slots []int
	items map[int]ItemStack
	money int64
	ready bool
}

// NewOfferStore creates an empty offer over the given positions.
func NewOfferStore(slots []int) *OfferStore {
	return &OfferStore{
		slots: slots,
		items: make(map[int]ItemStack, len(slots)),
	}
}

// Capacity is the number of item positions.
func (o *OfferStore) Capacity() int {
	return len(o.slots)
}

// Holds reports whether pos is one of this offer's item positions.
func (o *OfferStore) Holds(pos int) bool {
	return lo.Contains(o.slots, pos)
}

// Get returns the stack at pos, or an empty stack.
func (o *OfferStore) Get(pos int) ItemStack {
	return o.items[pos]
}

// Set places stack at pos and returns what was there before.
func (o *OfferStore) Set(pos int, stack ItemStack) (ItemStack, error) {
	if !o.Holds(pos) {
		return ItemStack{}, ErrSlotOutOfRange
	}
	prev := o.items[pos]
	if stack.IsEmpty() {
		delete(o.items, pos)
	} else {
		o.items[pos] = stack
	}
	return prev, nil
}

// Items returns the staged stacks in position order.
func (o *OfferStore) Items() []StagedItem {
	out := make([]StagedItem, 0, len(o.items))
	for _, pos := range o.slots {
		if stack, ok := o.items[pos]; ok {
			out = append(out, StagedItem{Position: pos, Stack: stack})
		}
	}
	return out
}

// Stacks returns the staged stacks in position order without positions.
func (o *OfferStore) Stacks() []ItemStack {
	return lo.Map(o.Items(), func(item StagedItem, _ int) ItemStack { return item.Stack })
}

// Drain empties the offer and returns its stacks.
func (o *OfferStore) Drain() []ItemStack {
	stacks := o.Stacks()
	o.items = make(map[int]ItemStack, len(o.slots))
	return stacks
}

func (o *OfferStore) Money() int64 {
	return o.money
}

func (o *OfferStore) Ready() bool {
	return o.ready
}

func (o *OfferStore) setMoney(amount int64) int64 {
	if amount < 0 {
		amount = 0
	}
	o.money = amount
	return o.money
}
