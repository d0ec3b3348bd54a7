package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// Ledger is an in-memory currency backend. Accounts are created with the
// starting balance on first use.
type Ledger struct {
	mu         sync.Mutex
	balances   map[uuid.UUID]int64
	starting   int64
	allowDebts bool
	printer    *message.Printer
	currency   string
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithDebts lets withdrawals take a balance below zero.
func WithDebts() LedgerOption {
	return func(l *Ledger) { l.allowDebts = true }
}

// NewLedger creates a ledger formatting amounts for locale.
func NewLedger(starting int64, locale language.Tag, currency string, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		balances: make(map[uuid.UUID]int64),
		starting: starting,
		printer:  message.NewPrinter(locale),
		currency: currency,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Ping reports whether the ledger can serve requests. It touches no account.
func (l *Ledger) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (l *Ledger) account(p uuid.UUID) int64 {
	balance, ok := l.balances[p]
	if !ok {
		balance = l.starting
		l.balances[p] = balance
	}
	return balance
}

func (l *Ledger) Balance(_ context.Context, p uuid.UUID) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.account(p), nil
}

func (l *Ledger) Withdraw(_ context.Context, p uuid.UUID, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	balance := l.account(p)
	if balance < amount && !l.allowDebts {
		return ErrInsufficientFunds
	}
	l.balances[p] = balance - amount
	return nil
}

func (l *Ledger) Deposit(_ context.Context, p uuid.UUID, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[p] = l.account(p) + amount
	return nil
}

// Format renders an amount with locale digit grouping, e.g. "1,250 coins".
func (l *Ledger) Format(amount int64) string {
	return l.printer.Sprintf("%d %s", amount, l.currency)
}

// Set overwrites a balance.
func (l *Ledger) Set(p uuid.UUID, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[p] = amount
}
