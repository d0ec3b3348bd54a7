package trade

import "fmt"

// MaxStackSize is the largest amount a single stack may hold.
const MaxStackSize = 64

// ItemStack is a stack of one item kind. The zero value is an empty slot.
type ItemStack struct {
	Type   string `json:"type"`
	Data   int    `json:"data,omitempty"`
	Amount int    `json:"amount"`
}

// IsEmpty reports whether the stack holds nothing.
func (s ItemStack) IsEmpty() bool {
	return s.Type == "" || s.Amount <= 0
}

// Similar reports whether both stacks are the same item kind, ignoring amount.
func (s ItemStack) Similar(other ItemStack) bool {
	return s.Type == other.Type && s.Data == other.Data
}

func (s ItemStack) String() string {
	if s.IsEmpty() {
		return "empty"
	}
	if s.Data != 0 {
		return fmt.Sprintf("%dx %s:%d", s.Amount, s.Type, s.Data)
	}
	return fmt.Sprintf("%dx %s", s.Amount, s.Type)
}
