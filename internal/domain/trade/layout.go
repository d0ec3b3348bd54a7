package trade

import (
	"slices"

	"github.com/samber/lo"
)

// Session view geometry. Every participant sees a 9x6 grid: their own offer on
// the left, the partner's mirrored offer on the right and the control field in
// the bottom rows.
const (
	Columns      = 9
	Rows         = 6
	ViewSize     = Columns * Rows
	MirrorOffset = 5
)

func slot(row, col int) int {
	return row*Columns + col
}

var (
	// OwnMoneySlot shows the participant's own money offer when money is enabled.
	OwnMoneySlot = slot(2, 3)
	// PartnerMoneySlot shows the partner's money offer.
	PartnerMoneySlot = OwnMoneySlot + MirrorOffset

	offerSlotsWithoutMoney = []int{
		slot(0, 0), slot(0, 1), slot(0, 2), slot(0, 3),
		slot(1, 0), slot(1, 1), slot(1, 2), slot(1, 3),
		slot(2, 0), slot(2, 1), slot(2, 2), slot(2, 3),
	}
	offerSlotsWithMoney = lo.Without(offerSlotsWithoutMoney, OwnMoneySlot)

	controlLeft  = []int{slot(4, 0), slot(4, 1), slot(5, 0), slot(5, 1)}
	controlRight = []int{slot(4, 2), slot(4, 3), slot(5, 2), slot(5, 3)}
	bottomLeft   = []int{slot(5, 0), slot(5, 1)}
	bottomRight  = []int{slot(5, 2), slot(5, 3)}

	moneyTierSlots = map[MoneyTier]int{
		MoneyTierSmall:  slot(4, 0),
		MoneyTierMedium: slot(4, 1),
		MoneyTierLarge:  slot(4, 2),
		MoneyTierClear:  slot(4, 3),
	}

	// PartnerStatusSlots render the partner's ready/accept state.
	PartnerStatusSlots = []int{
		slot(4, 5), slot(4, 6), slot(4, 7), slot(4, 8),
		slot(5, 5), slot(5, 6), slot(5, 7), slot(5, 8),
	}
)

// OfferSlots returns the own-offer positions for a session with or without money.
func OfferSlots(moneyEnabled bool) []int {
	if moneyEnabled {
		return slices.Clone(offerSlotsWithMoney)
	}
	return slices.Clone(offerSlotsWithoutMoney)
}

// MirrorSlot is the position in the partner's view that reflects own position pos.
func MirrorSlot(pos int) int {
	return pos + MirrorOffset
}
