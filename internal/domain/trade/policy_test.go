package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfferSlots(t *testing.T) {
	assert.Len(t, OfferSlots(false), 12)
	assert.Len(t, OfferSlots(true), 11)
	assert.NotContains(t, OfferSlots(true), OwnMoneySlot)
	assert.Equal(t, 26, PartnerMoneySlot)

	for _, pos := range OfferSlots(false) {
		assert.Less(t, pos%Columns, 4, "own offer stays in the left columns")
		assert.GreaterOrEqual(t, MirrorSlot(pos)%Columns, 5, "mirror lands in the right columns")
	}
}

func TestOfferSlots_ReturnsCopy(t *testing.T) {
	slots := OfferSlots(false)
	slots[0] = 99
	assert.Equal(t, 0, OfferSlots(false)[0])
}

func TestSlotSets(t *testing.T) {
	tests := []struct {
		name     string
		state    SlotState
		editable int
		ready    []int
		abort    []int
		money    bool
	}{
		{
			name:     "negotiating without money",
			state:    SlotState{Phase: PhaseNegotiating},
			editable: 12,
			ready:    []int{36, 37, 45, 46},
			abort:    []int{38, 39, 47, 48},
		},
		{
			name:     "negotiating with money",
			state:    SlotState{Phase: PhaseNegotiating, MoneyEnabled: true},
			editable: 11,
			ready:    []int{45, 46},
			abort:    []int{47, 48},
			money:    true,
		},
		{
			name:     "negotiating ready",
			state:    SlotState{Phase: PhaseNegotiating, Ready: true, MoneyEnabled: true},
			editable: 0,
			ready:    nil,
			abort:    []int{38, 39, 47, 48},
		},
		{
			name:     "confirming",
			state:    SlotState{Phase: PhaseConfirming, MoneyEnabled: true},
			editable: 0,
			ready:    []int{36, 37, 45, 46},
			abort:    []int{38, 39, 47, 48},
		},
		{
			name:     "confirming accepted",
			state:    SlotState{Phase: PhaseConfirming, Ready: true},
			editable: 0,
			ready:    nil,
			abort:    []int{38, 39, 47, 48},
		},
		{
			name:     "closed",
			state:    SlotState{Phase: PhaseNegotiating, MoneyEnabled: true, Closed: true},
			editable: 0,
			ready:    nil,
			abort:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, EditableSlots(tt.state), tt.editable)
			assert.Equal(t, tt.ready, ReadySlots(tt.state))
			assert.Equal(t, tt.abort, AbortSlots(tt.state))
			for _, tier := range AllMoneyTiers {
				if tt.money {
					assert.Len(t, MoneyAdjustSlots(tt.state, tier), 1)
				} else {
					assert.Empty(t, MoneyAdjustSlots(tt.state, tier))
				}
			}
		})
	}
}

func TestSlotSets_Disjoint(t *testing.T) {
	states := []SlotState{
		{Phase: PhaseNegotiating},
		{Phase: PhaseNegotiating, MoneyEnabled: true},
		{Phase: PhaseConfirming},
		{Phase: PhaseConfirming, MoneyEnabled: true},
	}
	for _, s := range states {
		seen := map[int]bool{}
		sets := [][]int{EditableSlots(s), ReadySlots(s), AbortSlots(s)}
		for _, tier := range AllMoneyTiers {
			sets = append(sets, MoneyAdjustSlots(s, tier))
		}
		for _, set := range sets {
			for _, pos := range set {
				assert.False(t, seen[pos], "position %d in two sets for %+v", pos, s)
				seen[pos] = true
			}
		}
	}
}

func TestRoute(t *testing.T) {
	money := SlotState{Phase: PhaseNegotiating, MoneyEnabled: true}

	assert.Equal(t, Decision{Action: ActionEdit}, Route(money, 0))
	assert.Equal(t, Decision{Action: ActionIgnored}, Route(money, OwnMoneySlot))
	assert.Equal(t, Decision{Action: ActionMoney, Tier: MoneyTierSmall}, Route(money, 36))
	assert.Equal(t, Decision{Action: ActionMoney, Tier: MoneyTierMedium}, Route(money, 37))
	assert.Equal(t, Decision{Action: ActionMoney, Tier: MoneyTierLarge}, Route(money, 38))
	assert.Equal(t, Decision{Action: ActionMoney, Tier: MoneyTierClear}, Route(money, 39))
	assert.Equal(t, Decision{Action: ActionReady}, Route(money, 45))
	assert.Equal(t, Decision{Action: ActionAbort}, Route(money, 48))
	assert.Equal(t, Decision{Action: ActionIgnored}, Route(money, MirrorSlot(0)))
	assert.Equal(t, Decision{Action: ActionIgnored}, Route(money, 50))

	ready := SlotState{Phase: PhaseNegotiating, Ready: true}
	assert.Equal(t, Decision{Action: ActionIgnored}, Route(ready, 0))
	assert.Equal(t, Decision{Action: ActionIgnored}, Route(ready, 36))
	assert.Equal(t, Decision{Action: ActionAbort}, Route(ready, 38))

	closed := SlotState{Phase: PhaseConfirming, Closed: true}
	for pos := 0; pos < ViewSize; pos++ {
		assert.Equal(t, ActionIgnored, Route(closed, pos).Action)
	}
}
