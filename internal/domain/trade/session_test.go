package trade_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/barterhub/barterhub/internal/domain/trade"
	"github.com/barterhub/barterhub/internal/domain/trade/mocks"
)

var (
	diamond = trade.ItemStack{Type: "diamond", Amount: 3}
	emerald = trade.ItemStack{Type: "emerald", Amount: 7}
	wool    = trade.ItemStack{Type: "wool", Data: 14, Amount: 64}
)

func approveBoth(t *testing.T, s *trade.Session, a, b uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Approve(ctx, a))
	require.NoError(t, s.Approve(ctx, b))
}

func TestSession_MirrorsEdits(t *testing.T) {
	f := newFixture(moneySettings())
	s, err := f.reg.Open(f.a, f.b)
	require.NoError(t, err)

	_, err = s.Stage(f.a, 0, diamond)
	require.NoError(t, err)
	_, err = s.Stage(f.b, 0, emerald)
	require.NoError(t, err)
	_, err = s.Stage(f.a, 10, wool)
	require.NoError(t, err)
	prev, err := s.Stage(f.a, 0, trade.ItemStack{})
	require.NoError(t, err)
	assert.Equal(t, diamond, prev)

	viewA, err := s.View(f.a)
	require.NoError(t, err)
	viewB, err := s.View(f.b)
	require.NoError(t, err)

	for _, side := range []struct {
		owner, partner trade.View
		who            uuid.UUID
	}{{viewA, viewB, f.a}, {viewB, viewA, f.b}} {
		offer, err := s.Offer(side.who)
		require.NoError(t, err)
		for _, pos := range trade.OfferSlots(true) {
			assert.Equal(t, side.owner.Slots[pos], side.partner.Slots[trade.MirrorSlot(pos)])
		}
		for _, item := range offer.Items {
			assert.Equal(t, item.Stack, side.partner.Slots[trade.MirrorSlot(item.Position)])
		}
	}
	assert.True(t, viewB.Slots[trade.MirrorSlot(0)].IsEmpty())
	assert.Equal(t, wool, viewB.Slots[trade.MirrorSlot(10)])
	assert.Equal(t, emerald, viewA.Slots[trade.MirrorSlot(0)])
}

func TestSession_StageOutsidePolicy(t *testing.T) {
	f := newFixture(moneySettings())
	s, err := f.reg.Open(f.a, f.b)
	require.NoError(t, err)

	_, err = s.Stage(f.a, trade.OwnMoneySlot, diamond)
	assert.ErrorIs(t, err, trade.ErrPolicyViolation)
	_, err = s.Stage(f.a, trade.MirrorSlot(0), diamond)
	assert.ErrorIs(t, err, trade.ErrPolicyViolation)
	_, err = s.Stage(uuid.New(), 0, diamond)
	assert.ErrorIs(t, err, trade.ErrNotParticipant)

	require.NoError(t, s.Approve(context.Background(), f.a))
	_, err = s.Stage(f.a, 0, diamond)
	assert.ErrorIs(t, err, trade.ErrPolicyViolation)

	offer, err := s.Offer(f.a)
	require.NoError(t, err)
	assert.Empty(t, offer.Items)
}

func TestSession_ApproveTransitions(t *testing.T) {
	f := newFixture(moneySettings())
	s, err := f.reg.Open(f.a, f.b)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Approve(ctx, f.a))
	assert.True(t, s.IsReady(f.a))
	assert.ErrorIs(t, s.Approve(ctx, f.a), trade.ErrPolicyViolation)

	viewA, _ := s.View(f.a)
	viewB, _ := s.View(f.b)
	assert.Equal(t, trade.ControlReadyWaiting, viewA.Control)
	assert.True(t, viewB.PartnerReady)
	assert.Equal(t, trade.StatusPartnerReady, viewB.PartnerStatus)

	require.NoError(t, s.Approve(ctx, f.b))
	assert.Equal(t, trade.PhaseConfirming, s.Phase())
	assert.False(t, s.IsReady(f.a))
	assert.False(t, s.IsReady(f.b))
	for _, p := range []uuid.UUID{f.a, f.b} {
		v, _ := s.View(p)
		assert.Equal(t, trade.ControlAccept, v.Control)
		assert.Equal(t, trade.StatusPartnerNotAcceptedYet, v.PartnerStatus)
	}

	_, err = s.ChangeMoney(f.a, trade.MoneyTierSmall, true)
	assert.ErrorIs(t, err, trade.ErrPolicyViolation)

	require.NoError(t, s.Approve(ctx, f.b))
	viewA, _ = s.View(f.a)
	assert.Equal(t, trade.StatusPartnerAccepted, viewA.PartnerStatus)
	assert.Equal(t, trade.StatusActive, s.Status())
}

func TestSession_ChangeMoney(t *testing.T) {
	f := newFixture(moneySettings())
	s, err := f.reg.Open(f.a, f.b)
	require.NoError(t, err)

	steps := []struct {
		tier     trade.MoneyTier
		increase bool
		want     int64
	}{
		{trade.MoneyTierLarge, true, 100},
		{trade.MoneyTierMedium, true, 110},
		{trade.MoneyTierSmall, false, 109},
		{trade.MoneyTierLarge, false, 9},
		{trade.MoneyTierMedium, false, 0},
		{trade.MoneyTierMedium, true, 10},
		{trade.MoneyTierClear, true, 0},
	}
	for _, step := range steps {
		got, err := s.ChangeMoney(f.a, step.tier, step.increase)
		require.NoError(t, err)
		assert.Equal(t, step.want, got)
	}

	_, _ = s.ChangeMoney(f.a, trade.MoneyTierMedium, true)
	viewA, _ := s.View(f.a)
	viewB, _ := s.View(f.b)
	assert.Equal(t, int64(10), viewA.OwnMoney)
	assert.Equal(t, int64(10), viewB.PartnerMoney)
}

func TestSession_ChangeMoneyDisabled(t *testing.T) {
	f := newFixture(trade.Settings{})
	s, err := f.reg.Open(f.a, f.b)
	require.NoError(t, err)

	_, err = s.ChangeMoney(f.a, trade.MoneyTierSmall, true)
	assert.ErrorIs(t, err, trade.ErrPolicyViolation)
}

func TestSession_SettleSwapsItemsAndMoney(t *testing.T) {
	f := newFixture(moneySettings())
	f.eco[f.a] = 60
	f.eco[f.b] = 5
	s, err := f.reg.Open(f.a, f.b)
	require.NoError(t, err)

	_, err = s.Stage(f.a, 0, diamond)
	require.NoError(t, err)
	_, err = s.Stage(f.b, 4, emerald)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = s.ChangeMoney(f.a, trade.MoneyTierMedium, true)
		require.NoError(t, err)
	}

	approveBoth(t, s, f.a, f.b)
	approveBoth(t, s, f.a, f.b)

	assert.Equal(t, trade.StatusSettled, s.Status())
	assert.Nil(t, f.reg.ActiveSessionOf(f.a))
	assert.Empty(t, f.inv.open)
	assert.Equal(t, []trade.ItemStack{emerald}, f.inv.storage[f.a])
	assert.Equal(t, []trade.ItemStack{diamond}, f.inv.storage[f.b])
	assert.Equal(t, int64(10), f.eco[f.a])
	assert.Equal(t, int64(55), f.eco[f.b])
	assert.Equal(t, []string{trade.MsgTradeSucceeded}, f.notifier.keys(f.a))
	assert.Equal(t, []string{trade.MsgTradeSucceeded}, f.notifier.keys(f.b))

	last := f.sink.events[len(f.sink.events)-1]
	assert.Equal(t, trade.EventSettled, last.Type)
	assert.Equal(t, [2]int64{50, 0}, last.Money)
	assert.Equal(t, [2][]trade.ItemStack{{diamond}, {emerald}}, last.Items)

	assert.False(t, s.Abort(f.a), "settled session cannot be aborted")
}

func TestSession_SettleInsolvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(moneySettings())
	eco := mocks.NewMockEconomy(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	reg := trade.NewRegistry(moneySettings(), trade.Deps{
		Inventory: f.inv,
		Economy:   eco,
		Notifier:  notifier,
	}, zerolog.Nop())

	s, err := reg.Open(f.a, f.b)
	require.NoError(t, err)
	_, _ = s.Stage(f.a, 0, diamond)
	_, _ = s.Stage(f.b, 0, emerald)
	for i := 0; i < 5; i++ {
		_, _ = s.ChangeMoney(f.a, trade.MoneyTierMedium, true)
	}

	eco.EXPECT().Balance(gomock.Any(), f.a).Return(int64(10), nil)
	notifier.EXPECT().Notify(f.a, trade.Message{Key: trade.MsgNotEnoughMoneyYou})
	notifier.EXPECT().Notify(f.b, gomock.Any()).Do(func(_ uuid.UUID, msg trade.Message) {
		assert.Equal(t, trade.MsgNotEnoughMoneyPartner, msg.Key)
		assert.Equal(t, []any{f.inv.DisplayName(f.a)}, msg.Args)
	})

	approveBoth(t, s, f.a, f.b)
	approveBoth(t, s, f.a, f.b)

	assert.Equal(t, trade.StatusInsolvent, s.Status())
	assert.Nil(t, reg.ActiveSessionOf(f.a))
	assert.Equal(t, []trade.ItemStack{diamond}, f.inv.storage[f.a])
	assert.Equal(t, []trade.ItemStack{emerald}, f.inv.storage[f.b])
}

func TestSession_SettleInsolventWithDebtsAllowed(t *testing.T) {
	settings := moneySettings()
	settings.NoDebts = false
	f := newFixture(settings)
	f.eco[f.a] = 100
	f.eco[f.b] = 0
	s, err := f.reg.Open(f.a, f.b)
	require.NoError(t, err)

	_, err = s.Stage(f.b, 0, diamond)
	require.NoError(t, err)
	_, _ = s.ChangeMoney(f.b, trade.MoneyTierMedium, true)
	approveBoth(t, s, f.a, f.b)
	approveBoth(t, s, f.a, f.b)

	assert.Equal(t, trade.StatusSettled, s.Status())
	assert.Equal(t, int64(110), f.eco[f.a])
	assert.Equal(t, int64(-10), f.eco[f.b])
	assert.Equal(t, []trade.ItemStack{diamond}, f.inv.storage[f.a])
	assert.Contains(t, f.notifier.keys(f.a), trade.MsgTradeSucceeded)
	assert.NotContains(t, f.notifier.keys(f.a), trade.MsgNotEnoughMoneyPartner)
}

func TestSession_SettleZeroOfferSkipsEconomy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inv := newFakeInventory(36)
	eco := mocks.NewMockEconomy(ctrl)
	reg := trade.NewRegistry(moneySettings(), trade.Deps{Inventory: inv, Economy: eco}, zerolog.Nop())
	a, b := uuid.New(), uuid.New()

	s, err := reg.Open(a, b)
	require.NoError(t, err)
	approveBoth(t, s, a, b)
	approveBoth(t, s, a, b)

	assert.Equal(t, trade.StatusSettled, s.Status())
}

func TestSession_SettleRefundsOnDepositFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inv := newFakeInventory(36)
	eco := mocks.NewMockEconomy(ctrl)
	reg := trade.NewRegistry(moneySettings(), trade.Deps{Inventory: inv, Economy: eco}, zerolog.Nop())
	a, b := uuid.New(), uuid.New()

	s, err := reg.Open(a, b)
	require.NoError(t, err)
	_, _ = s.ChangeMoney(a, trade.MoneyTierSmall, true)

	gomock.InOrder(
		eco.EXPECT().Balance(gomock.Any(), a).Return(int64(1), nil),
		eco.EXPECT().Withdraw(gomock.Any(), a, int64(1)).Return(nil),
		eco.EXPECT().Deposit(gomock.Any(), b, int64(1)).Return(errors.New("backend down")),
		eco.EXPECT().Deposit(gomock.Any(), a, int64(1)).Return(nil),
	)

	approveBoth(t, s, a, b)
	approveBoth(t, s, a, b)
	assert.Equal(t, trade.StatusSettled, s.Status())
}

func TestSession_AbortReturnsItemsOnce(t *testing.T) {
	f := newFixture(moneySettings())
	s, err := f.reg.Open(f.a, f.b)
	require.NoError(t, err)

	_, _ = s.Stage(f.a, 0, diamond)
	_, _ = s.Stage(f.b, 1, emerald)
	f.inv.held[f.b] = wool

	assert.True(t, s.Abort(f.a))
	assert.False(t, s.Abort(f.a))
	assert.False(t, s.Abort(f.b))

	assert.Equal(t, trade.StatusAborted, s.Status())
	assert.Nil(t, f.reg.ActiveSessionOf(f.a))
	assert.Equal(t, []trade.ItemStack{diamond}, f.inv.storage[f.a])
	assert.ElementsMatch(t, []trade.ItemStack{emerald, wool}, f.inv.storage[f.b])
	assert.True(t, f.inv.held[f.b].IsEmpty())
	assert.Empty(t, f.inv.open)

	assert.Equal(t, []string{trade.MsgYouAbortedTrade}, f.notifier.keys(f.a))
	assert.Equal(t, []string{trade.MsgPlayerAbortedTrade}, f.notifier.keys(f.b))

	aborted := 0
	for _, evt := range f.sink.events {
		if evt.Type == trade.EventAborted {
			aborted++
			assert.Equal(t, f.a, evt.Initiator)
		}
	}
	assert.Equal(t, 1, aborted)
}

func TestSession_AbortWithoutInitiatorIsSilent(t *testing.T) {
	f := newFixture(moneySettings())
	s, err := f.reg.Open(f.a, f.b)
	require.NoError(t, err)
	_, _ = s.Stage(f.a, 0, diamond)

	assert.True(t, s.Abort(uuid.Nil))
	assert.Empty(t, f.notifier.sent)
	assert.Equal(t, []trade.ItemStack{diamond}, f.inv.storage[f.a])
}

func TestSession_AbortReentrantViewClose(t *testing.T) {
	f := newFixture(moneySettings())
	s, err := f.reg.Open(f.a, f.b)
	require.NoError(t, err)
	_, _ = s.Stage(f.a, 0, diamond)

	reentered := 0
	f.inv.onClose = func(p uuid.UUID) {
		if s.Abort(p) {
			reentered++
		}
	}

	assert.True(t, s.Abort(f.b))
	assert.Zero(t, reentered)
	assert.Equal(t, []trade.ItemStack{diamond}, f.inv.storage[f.a])
}

func TestSession_DeliverOverflowDropsWithOwnerTag(t *testing.T) {
	f := newFixture(moneySettings())
	f.inv.capacity = 1
	f.inv.storage[f.a] = []trade.ItemStack{wool}
	s, err := f.reg.Open(f.a, f.b)
	require.NoError(t, err)
	_, _ = s.Stage(f.a, 0, diamond)
	_, _ = s.Stage(f.a, 1, emerald)

	s.Abort(f.a)

	require.Len(t, f.inv.drops, 2)
	for _, d := range f.inv.drops {
		assert.Equal(t, f.a, d.participant)
		assert.Equal(t, trade.OwnerTag{Owner: f.a, DroppedAt: testNow}, d.tag)
	}
	assert.Equal(t, []trade.ItemStack{wool}, f.inv.storage[f.a])
}
