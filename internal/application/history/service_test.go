package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/barterhub/barterhub/internal/domain/history"
	historyMocks "github.com/barterhub/barterhub/internal/domain/history/mocks"
	"github.com/barterhub/barterhub/internal/domain/trade"
)

func TestService_PublishCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewService(historyMocks.NewMockRepository(ctrl), 10, zerolog.Nop())

	svc.Publish(trade.Event{Type: trade.EventOpened})
	svc.Publish(trade.Event{Type: trade.EventSettled})
	svc.Publish(trade.Event{Type: trade.EventSettled})
	svc.Publish(trade.Event{Type: trade.EventAborted})
	svc.Publish(trade.Event{Type: trade.EventInsolvent})

	assert.Equal(t, history.Stats{Settled: 2, Aborted: 1, Insolvent: 1}, svc.Counters())
}

func TestService_PublishDropsWhenFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewService(historyMocks.NewMockRepository(ctrl), 1, zerolog.Nop())
	svc.Publish(trade.Event{Type: trade.EventAborted})
	svc.Publish(trade.Event{Type: trade.EventAborted})

	assert.Equal(t, int64(1), svc.Dropped())
	assert.Equal(t, int64(2), svc.Counters().Aborted)
}

func TestService_RunStoresAndFlushes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := historyMocks.NewMockRepository(ctrl)
	svc := NewService(repo, 10, zerolog.Nop())

	sessionID := uuid.New()
	stored := make(chan *history.Record, 2)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *history.Record) error {
			stored <- rec
			return nil
		}).
		Times(2)

	svc.Publish(trade.Event{Type: trade.EventSettled, SessionID: sessionID})
	svc.Publish(trade.Event{Type: trade.EventAborted, SessionID: uuid.New()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, svc.Run(ctx))

	require.Len(t, stored, 2)
	outcomes := []history.Outcome{(<-stored).Outcome, (<-stored).Outcome}
	assert.ElementsMatch(t, []history.Outcome{history.OutcomeSettled, history.OutcomeAborted}, outcomes)
}

func TestService_RunSurvivesRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := historyMocks.NewMockRepository(ctrl)
	svc := NewService(repo, 10, zerolog.Nop())
	done := make(chan struct{})
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, *history.Record) error {
		close(done)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Run(ctx) }()

	svc.Publish(trade.Event{Type: trade.EventAborted})
	svc.Publish(trade.Event{Type: trade.EventSettled})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second event was not stored")
	}
}

func TestService_ListClampsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := historyMocks.NewMockRepository(ctrl)
	svc := NewService(repo, 10, zerolog.Nop())
	ctx := context.Background()

	repo.EXPECT().List(ctx, history.Filter{}, defaultLimit, 0).Return(nil, nil)
	repo.EXPECT().List(ctx, history.Filter{}, maxLimit, 5).Return(nil, nil)

	_, err := svc.List(ctx, history.Filter{}, 0, 0)
	require.NoError(t, err)
	_, err = svc.List(ctx, history.Filter{}, 1000, 5)
	require.NoError(t, err)
	_, err = svc.List(ctx, history.Filter{}, 10, -1)
	assert.Error(t, err)
}
