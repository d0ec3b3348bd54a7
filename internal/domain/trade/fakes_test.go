package trade_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/barterhub/barterhub/internal/domain/trade"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type dropped struct {
	participant uuid.UUID
	stack       trade.ItemStack
	tag         trade.OwnerTag
}

// fakeInventory keeps per-participant storage with a stack limit.
type fakeInventory struct {
	capacity int
	storage  map[uuid.UUID][]trade.ItemStack
	held     map[uuid.UUID]trade.ItemStack
	open     map[uuid.UUID]uuid.UUID
	drops    []dropped
	onClose  func(participant uuid.UUID)
}

func newFakeInventory(capacity int) *fakeInventory {
	return &fakeInventory{
		capacity: capacity,
		storage:  map[uuid.UUID][]trade.ItemStack{},
		held:     map[uuid.UUID]trade.ItemStack{},
		open:     map[uuid.UUID]uuid.UUID{},
	}
}

func (f *fakeInventory) DisplayName(p uuid.UUID) string { return "player-" + p.String()[:4] }

func (f *fakeInventory) AddItems(p uuid.UUID, stacks ...trade.ItemStack) []trade.ItemStack {
	var left []trade.ItemStack
	for _, s := range stacks {
		if len(f.storage[p]) >= f.capacity {
			left = append(left, s)
			continue
		}
		f.storage[p] = append(f.storage[p], s)
	}
	return left
}

func (f *fakeInventory) HeldItem(p uuid.UUID) trade.ItemStack       { return f.held[p] }
func (f *fakeInventory) SetHeldItem(p uuid.UUID, s trade.ItemStack) { f.held[p] = s }
func (f *fakeInventory) OpenView(p, sessionID uuid.UUID)            { f.open[p] = sessionID }

func (f *fakeInventory) CloseView(p uuid.UUID) {
	delete(f.open, p)
	if f.onClose != nil {
		f.onClose(p)
	}
}

func (f *fakeInventory) Drop(p uuid.UUID, s trade.ItemStack, tag trade.OwnerTag) {
	f.drops = append(f.drops, dropped{participant: p, stack: s, tag: tag})
}

// ledger is an in-memory economy that lets balances go negative. Whether a
// session may overdraw is decided by Settings.NoDebts before any withdrawal.
type ledger map[uuid.UUID]int64

func (l ledger) Balance(_ context.Context, p uuid.UUID) (int64, error) { return l[p], nil }

func (l ledger) Withdraw(_ context.Context, p uuid.UUID, amount int64) error {
	l[p] -= amount
	return nil
}

func (l ledger) Deposit(_ context.Context, p uuid.UUID, amount int64) error {
	l[p] += amount
	return nil
}

func (l ledger) Format(amount int64) string { return fmt.Sprintf("$%d", amount) }

type notification struct {
	participant uuid.UUID
	msg         trade.Message
}

type recordingNotifier struct {
	sent []notification
}

func (r *recordingNotifier) Notify(p uuid.UUID, msg trade.Message) {
	r.sent = append(r.sent, notification{participant: p, msg: msg})
}

func (r *recordingNotifier) keys(p uuid.UUID) []string {
	var out []string
	for _, n := range r.sent {
		if n.participant == p {
			out = append(out, n.msg.Key)
		}
	}
	return out
}

type recordingSink struct {
	events []trade.Event
}

func (r *recordingSink) Publish(evt trade.Event) { r.events = append(r.events, evt) }

type fixture struct {
	reg      *trade.Registry
	inv      *fakeInventory
	eco      ledger
	notifier *recordingNotifier
	sink     *recordingSink
	a, b     uuid.UUID
}

func newFixture(settings trade.Settings) *fixture {
	f := &fixture{
		inv:      newFakeInventory(36),
		eco:      ledger{},
		notifier: &recordingNotifier{},
		sink:     &recordingSink{},
		a:        uuid.New(),
		b:        uuid.New(),
	}
	f.reg = trade.NewRegistry(settings, trade.Deps{
		Inventory: f.inv,
		Economy:   f.eco,
		Notifier:  f.notifier,
		Sinks:     []trade.EventSink{f.sink},
		Now:       func() time.Time { return testNow },
	}, zerolog.Nop())
	return f
}

func moneySettings() trade.Settings {
	return trade.Settings{
		MoneyEnabled: true,
		NoDebts:      true,
		Tiers:        trade.MoneyTiers{Small: 1, Medium: 10, Large: 100},
	}
}
