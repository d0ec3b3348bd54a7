package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLedger(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(100, language.AmericanEnglish, "coins")
	p := uuid.New()

	balance, err := l.Balance(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	require.NoError(t, l.Withdraw(ctx, p, 40))
	assert.ErrorIs(t, l.Withdraw(ctx, p, 61), ErrInsufficientFunds)
	require.NoError(t, l.Deposit(ctx, p, 5))
	assert.ErrorIs(t, l.Deposit(ctx, p, 0), ErrInvalidAmount)

	balance, _ = l.Balance(ctx, p)
	assert.Equal(t, int64(65), balance)
}

func TestLedger_WithDebts(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(0, language.AmericanEnglish, "coins", WithDebts())
	p := uuid.New()

	require.NoError(t, l.Withdraw(ctx, p, 10))
	balance, err := l.Balance(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, int64(-10), balance)
	assert.ErrorIs(t, l.Withdraw(ctx, p, 0), ErrInvalidAmount)
}

func TestLedger_PingCreatesNoAccount(t *testing.T) {
	l := NewLedger(100, language.AmericanEnglish, "coins")
	require.NoError(t, l.Ping(context.Background()))
	assert.Empty(t, l.balances)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Ping(ctx), context.Canceled)
}

func TestLedger_Format(t *testing.T) {
	assert.Equal(t, "1,250 coins", NewLedger(0, language.AmericanEnglish, "coins").Format(1250))
	assert.Equal(t, "1.250 Münzen", NewLedger(0, language.German, "Münzen").Format(1250))
}
