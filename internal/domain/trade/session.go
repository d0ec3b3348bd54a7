package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSettled   Status = "SETTLED"
	StatusAborted   Status = "ABORTED"
	StatusInsolvent Status = "INSOLVENT"
)

// Terminal reports whether no further changes can happen.
func (s Status) Terminal() bool {
	return s != StatusActive
}

// OfferSnapshot is a read-only copy of one participant's offer.
type OfferSnapshot struct {
	Participant uuid.UUID    `json:"participant"`
	Items       []StagedItem `json:"items"`
	Money       int64        `json:"money"`
	Ready       bool         `json:"ready"`
}

// Session is a two-party trade. It is not safe for concurrent use: all calls
// for a session are expected to come from a single serialized worker.
type Session struct {
	id           uuid.UUID
	participants [2]uuid.UUID
	offers       [2]*OfferStore
	views        [2]*View
	phase        Phase
	status       Status
	moneyEnabled bool
	openedAt     time.Time

	reg    *Registry
	logger zerolog.Logger
}

func newSession(reg *Registry, p1, p2 uuid.UUID) *Session {
	money := reg.settings.MoneyEnabled
	s := &Session{
		id:           uuid.New(),
		participants: [2]uuid.UUID{p1, p2},
		phase:        PhaseNegotiating,
		status:       StatusActive,
		moneyEnabled: money,
		openedAt:     reg.deps.Now(),
		reg:          reg,
	}
	for i := range s.participants {
		s.offers[i] = NewOfferStore(OfferSlots(money))
		s.views[i] = newView(money)
	}
	s.logger = reg.logger.With().Str("session_id", s.id.String()).Logger()
	return s
}

func (s *Session) ID() uuid.UUID                  { return s.id }
func (s *Session) Participants() [2]uuid.UUID     { return s.participants }
func (s *Session) Phase() Phase                   { return s.phase }
func (s *Session) Status() Status                 { return s.status }
func (s *Session) MoneyEnabled() bool             { return s.moneyEnabled }
func (s *Session) OpenedAt() time.Time            { return s.openedAt }
func (s *Session) Has(participant uuid.UUID) bool { return s.index(participant) >= 0 }

func (s *Session) index(participant uuid.UUID) int {
	switch participant {
	case s.participants[0]:
		return 0
	case s.participants[1]:
		return 1
	}
	return -1
}

// Partner returns the other participant.
func (s *Session) Partner(participant uuid.UUID) (uuid.UUID, error) {
	i := s.index(participant)
	if i < 0 {
		return uuid.Nil, ErrNotParticipant
	}
	return s.participants[1-i], nil
}

// SlotState returns the policy input for participant.
func (s *Session) SlotState(participant uuid.UUID) (SlotState, error) {
	i := s.index(participant)
	if i < 0 {
		return SlotState{}, ErrNotParticipant
	}
	return s.slotState(i), nil
}

func (s *Session) slotState(i int) SlotState {
	return SlotState{
		Phase:        s.phase,
		Ready:        s.offers[i].ready,
		MoneyEnabled: s.moneyEnabled,
		Closed:       s.status.Terminal(),
	}
}

// Route classifies a click of participant at pos.
func (s *Session) Route(participant uuid.UUID, pos int) (Decision, error) {
	state, err := s.SlotState(participant)
	if err != nil {
		return Decision{}, err
	}
	return Route(state, pos), nil
}

// IsReady reports whether participant confirmed the current phase.
func (s *Session) IsReady(participant uuid.UUID) bool {
	i := s.index(participant)
	return i >= 0 && s.offers[i].ready
}

// Offer returns a snapshot of participant's offer.
func (s *Session) Offer(participant uuid.UUID) (OfferSnapshot, error) {
	i := s.index(participant)
	if i < 0 {
		return OfferSnapshot{}, ErrNotParticipant
	}
	o := s.offers[i]
	return OfferSnapshot{Participant: participant, Items: o.Items(), Money: o.money, Ready: o.ready}, nil
}

// View returns a copy of participant's session window.
func (s *Session) View(participant uuid.UUID) (View, error) {
	i := s.index(participant)
	if i < 0 {
		return View{}, ErrNotParticipant
	}
	return *s.views[i], nil
}

// Stage puts stack at pos of participant's offer and mirrors it into the
// partner's view. It returns the stack that was there before; the caller owns
// it from then on.
func (s *Session) Stage(participant uuid.UUID, pos int, stack ItemStack) (ItemStack, error) {
	i := s.index(participant)
	if i < 0 {
		return ItemStack{}, ErrNotParticipant
	}
	if Route(s.slotState(i), pos).Action != ActionEdit {
		return ItemStack{}, ErrPolicyViolation
	}
	prev, err := s.offers[i].Set(pos, stack)
	if err != nil {
		return ItemStack{}, err
	}
	s.mirror(i, pos)
	return prev, nil
}

func (s *Session) mirror(i, pos int) {
	stack := s.offers[i].Get(pos)
	s.views[i].Slots[pos] = stack
	s.views[1-i].Slots[MirrorSlot(pos)] = stack
}

// Resync rebuilds both views from the offers.
func (s *Session) Resync() {
	for i := range s.offers {
		for _, pos := range s.offers[i].slots {
			s.mirror(i, pos)
		}
		s.views[i].OwnMoney = s.offers[i].money
		s.views[1-i].PartnerMoney = s.offers[i].money
	}
}

// Approve marks participant ready for the current phase. Both ready while
// negotiating moves the session to confirming; both ready while confirming
// settles it.
func (s *Session) Approve(ctx context.Context, participant uuid.UUID) error {
	i := s.index(participant)
	if i < 0 {
		return ErrNotParticipant
	}
	if s.status.Terminal() {
		return ErrSessionClosed
	}
	if len(ReadySlots(s.slotState(i))) == 0 {
		return ErrPolicyViolation
	}
	s.Resync()
	s.offers[i].ready = true

	if s.phase == PhaseNegotiating {
		s.views[i].Control = ControlReadyWaiting
		s.views[1-i].setPartnerStatus(true, StatusPartnerReady)
	} else {
		s.views[i].Control = ControlAcceptWaiting
		s.views[1-i].setPartnerStatus(true, StatusPartnerAccepted)
	}

	if !s.offers[1-i].ready {
		return nil
	}
	if s.phase == PhaseConfirming {
		s.settle(ctx)
		return nil
	}

	s.phase = PhaseConfirming
	for j := range s.offers {
		s.offers[j].ready = false
		s.views[j].Control = ControlAccept
		s.views[j].setPartnerStatus(false, StatusPartnerNotAcceptedYet)
	}
	s.logger.Info().Msg("trade confirming")
	return nil
}

// ChangeMoney adjusts participant's money offer by the tier's increment, or
// resets it for MoneyTierClear, and returns the new amount.
func (s *Session) ChangeMoney(participant uuid.UUID, tier MoneyTier, increase bool) (int64, error) {
	i := s.index(participant)
	if i < 0 {
		return 0, ErrNotParticipant
	}
	if len(MoneyAdjustSlots(s.slotState(i), tier)) == 0 {
		return 0, ErrPolicyViolation
	}
	o := s.offers[i]
	amount := int64(0)
	if tier != MoneyTierClear {
		step := s.reg.settings.Tiers.amount(tier)
		if !increase {
			step = -step
		}
		amount = o.money + step
	}
	amount = o.setMoney(amount)
	s.views[i].OwnMoney = amount
	s.views[1-i].PartnerMoney = amount
	return amount, nil
}

// Abort ends the session and gives every staged or held item back to its
// owner. initiator may be uuid.Nil when nobody in particular caused it, in
// which case no one is notified. It reports whether this call aborted the session.
func (s *Session) Abort(initiator uuid.UUID) bool {
	if !s.reg.Close(s) {
		return false
	}
	s.status = StatusAborted
	s.release()

	var items [2][]ItemStack
	var money [2]int64
	for i, p := range s.participants {
		items[i] = s.offers[i].Drain()
		money[i] = s.offers[i].money
		s.deliver(p, items[i])
	}

	if k := s.index(initiator); k >= 0 {
		name := s.reg.deps.Inventory.DisplayName(initiator)
		s.notify(s.participants[k], Message{Key: MsgYouAbortedTrade})
		s.notify(s.participants[1-k], Message{Key: MsgPlayerAbortedTrade, Args: []any{name}})
	}

	s.logger.Info().Str("initiator", initiator.String()).Msg("trade aborted")
	s.reg.publish(s.event(EventAborted, initiator, items, money))
	return true
}

// release returns held items and closes both views. The session must already
// be out of the registry so a view close reported back by the host cannot
// re-enter.
func (s *Session) release() {
	inv := s.reg.deps.Inventory
	for _, p := range s.participants {
		if held := inv.HeldItem(p); !held.IsEmpty() {
			inv.SetHeldItem(p, ItemStack{})
			s.deliver(p, []ItemStack{held})
		}
		inv.CloseView(p)
	}
}

func (s *Session) settle(ctx context.Context) {
	if !s.reg.Close(s) {
		return
	}
	s.release()

	var items [2][]ItemStack
	var money [2]int64
	for i := range s.offers {
		items[i] = s.offers[i].Drain()
		money[i] = s.offers[i].money
	}

	insolvent := s.checkSolvency(ctx, money)
	if (insolvent[0] || insolvent[1]) && s.reg.settings.NoDebts {
		s.status = StatusInsolvent
		for i, p := range s.participants {
			s.deliver(p, items[i])
		}
		for i, p := range s.participants {
			if !insolvent[i] {
				continue
			}
			s.notify(p, Message{Key: MsgNotEnoughMoneyYou})
			s.notify(s.participants[1-i], Message{
				Key:  MsgNotEnoughMoneyPartner,
				Args: []any{s.reg.deps.Inventory.DisplayName(p)},
			})
		}
		s.logger.Info().Bool("insolvent_a", insolvent[0]).Bool("insolvent_b", insolvent[1]).Msg("trade failed: insufficient funds")
		s.reg.publish(s.event(EventInsolvent, uuid.Nil, items, money))
		return
	}

	s.status = StatusSettled
	s.deliver(s.participants[0], items[1])
	s.deliver(s.participants[1], items[0])
	if s.moneyEnabled {
		for i := range s.participants {
			s.transfer(ctx, s.participants[i], s.participants[1-i], money[i])
		}
	}
	for _, p := range s.participants {
		s.notify(p, Message{Key: MsgTradeSucceeded})
	}
	s.logger.Info().Int64("money_a", money[0]).Int64("money_b", money[1]).Msg("trade settled")
	s.reg.publish(s.event(EventSettled, uuid.Nil, items, money))
}

// checkSolvency flags every participant whose balance cannot cover their
// offer. A zero offer is always affordable; a failing balance lookup is not.
func (s *Session) checkSolvency(ctx context.Context, money [2]int64) [2]bool {
	var insolvent [2]bool
	if !s.moneyEnabled {
		return insolvent
	}
	for i, p := range s.participants {
		if money[i] <= 0 {
			continue
		}
		balance, err := s.reg.deps.Economy.Balance(ctx, p)
		if err != nil {
			s.logger.Warn().Err(err).Str("participant", p.String()).Msg("balance lookup failed")
			insolvent[i] = true
			continue
		}
		insolvent[i] = balance < money[i]
	}
	return insolvent
}

func (s *Session) transfer(ctx context.Context, from, to uuid.UUID, amount int64) {
	if amount <= 0 {
		return
	}
	eco := s.reg.deps.Economy
	if err := eco.Withdraw(ctx, from, amount); err != nil {
		s.logger.Error().Err(err).Str("participant", from.String()).Int64("amount", amount).Msg("withdraw failed")
		return
	}
	if err := eco.Deposit(ctx, to, amount); err != nil {
		s.logger.Error().Err(err).Str("participant", to.String()).Int64("amount", amount).Msg("deposit failed")
		if err := eco.Deposit(ctx, from, amount); err != nil {
			s.logger.Error().Err(err).Str("participant", from.String()).Int64("amount", amount).Msg("refund failed")
		}
	}
}

// deliver stores stacks with the participant and drops whatever does not fit
// at their location, tagged with their identity.
func (s *Session) deliver(participant uuid.UUID, stacks []ItemStack) {
	if len(stacks) == 0 {
		return
	}
	inv := s.reg.deps.Inventory
	leftovers := inv.AddItems(participant, stacks...)
	if len(leftovers) == 0 {
		return
	}
	tag := OwnerTag{Owner: participant, DroppedAt: s.reg.deps.Now()}
	for _, stack := range leftovers {
		inv.Drop(participant, stack, tag)
	}
	s.logger.Debug().Str("participant", participant.String()).Int("stacks", len(leftovers)).Msg("storage full, dropped items")
}

func (s *Session) notify(participant uuid.UUID, msg Message) {
	if s.reg.deps.Notifier != nil {
		s.reg.deps.Notifier.Notify(participant, msg)
	}
}

func (s *Session) event(typ EventType, initiator uuid.UUID, items [2][]ItemStack, money [2]int64) Event {
	return Event{
		Type:         typ,
		SessionID:    s.id,
		Participants: s.participants,
		Initiator:    initiator,
		Items:        items,
		Money:        money,
		At:           s.reg.deps.Now(),
	}
}
