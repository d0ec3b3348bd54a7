package trade

import (
	"slices"

	"github.com/samber/lo"
)

// Phase is the negotiation stage of a session.
type Phase string

const (
	// PhaseNegotiating waits for both participants to mark ready.
	PhaseNegotiating Phase = "NEGOTIATING"
	// PhaseConfirming waits for both participants to accept the frozen offers.
	PhaseConfirming Phase = "CONFIRMING"
)

// MoneyTier selects the increment applied by a money control.
type MoneyTier string

const (
	MoneyTierSmall  MoneyTier = "SMALL"
	MoneyTierMedium MoneyTier = "MEDIUM"
	MoneyTierLarge  MoneyTier = "LARGE"
	MoneyTierClear  MoneyTier = "CLEAR"
)

// AllMoneyTiers lists the tiers in control-field order.
var AllMoneyTiers = []MoneyTier{MoneyTierSmall, MoneyTierMedium, MoneyTierLarge, MoneyTierClear}

// Action is the outcome of routing a click on a session view position.
type Action string

const (
	ActionIgnored Action = "IGNORED"
	ActionEdit    Action = "EDIT"
	ActionReady   Action = "READY"
	ActionAbort   Action = "ABORT"
	ActionMoney   Action = "MONEY"
)

// Decision tells the click-routing layer what a position means right now.
type Decision struct {
	Action Action    `json:"action"`
	Tier   MoneyTier `json:"tier,omitempty"`
}

// SlotState is everything the slot policy needs to know about one participant.
type SlotState struct {
	Phase        Phase
	Ready        bool
	MoneyEnabled bool
	Closed       bool
}

// EditableSlots returns the offer positions the participant may change.
func EditableSlots(s SlotState) []int {
	if s.Closed || s.Ready || s.Phase == PhaseConfirming {
		return nil
	}
	return OfferSlots(s.MoneyEnabled)
}

// ReadySlots returns the positions that mark ready (negotiating) or accept (confirming).
func ReadySlots(s SlotState) []int {
	if s.Closed || s.Ready {
		return nil
	}
	if s.Phase == PhaseNegotiating && s.MoneyEnabled {
		return slices.Clone(bottomLeft)
	}
	return slices.Clone(controlLeft)
}

// AbortSlots returns the positions that abort the session. They stay available
// while waiting for the partner and only disappear once the session is closed.
func AbortSlots(s SlotState) []int {
	if s.Closed {
		return nil
	}
	if s.Phase == PhaseNegotiating && !s.Ready && s.MoneyEnabled {
		return slices.Clone(bottomRight)
	}
	return slices.Clone(controlRight)
}

// MoneyAdjustSlots returns the position bound to tier, if money controls are shown.
func MoneyAdjustSlots(s SlotState, tier MoneyTier) []int {
	if s.Closed || !s.MoneyEnabled || s.Ready || s.Phase != PhaseNegotiating {
		return nil
	}
	pos, ok := moneyTierSlots[tier]
	if !ok {
		return nil
	}
	return []int{pos}
}

// Route classifies a click at pos. Positions outside every set are ignored.
func Route(s SlotState, pos int) Decision {
	switch {
	case lo.Contains(EditableSlots(s), pos):
		return Decision{Action: ActionEdit}
	case lo.Contains(ReadySlots(s), pos):
		return Decision{Action: ActionReady}
	case lo.Contains(AbortSlots(s), pos):
		return Decision{Action: ActionAbort}
	}
	for _, tier := range AllMoneyTiers {
		if lo.Contains(MoneyAdjustSlots(s, tier), pos) {
			return Decision{Action: ActionMoney, Tier: tier}
		}
	}
	return Decision{Action: ActionIgnored}
}
