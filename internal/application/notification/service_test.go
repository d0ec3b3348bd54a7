package notification

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/barterhub/barterhub/internal/clock"
	"github.com/barterhub/barterhub/internal/domain/notification"
	"github.com/barterhub/barterhub/internal/domain/notification/mocks"
	"github.com/barterhub/barterhub/internal/domain/trade"
	"github.com/barterhub/barterhub/internal/infrastructure/i18n"
)

func newCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.LoadEmbedded()
	require.NoError(t, err)
	return c
}

func TestService_NotifyRendersAndPushes(t *testing.T) {
	ctrl := gomock.NewController(t)
	hub := mocks.NewMockSSEHub(ctrl)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(newCatalog(t), hub, "en-US", clock.NewFake(now), zerolog.Nop())
	alice := uuid.New()
	svc.SetLocale(alice, "de-DE")

	var pushed *notification.SSEMessage
	hub.EXPECT().SendToParticipant(alice, gomock.Any()).DoAndReturn(
		func(_ uuid.UUID, msg *notification.SSEMessage) error {
			pushed = msg
			return nil
		})

	svc.Notify(alice, trade.Message{Key: trade.MsgPlayerAbortedTrade, Args: []any{"Bob"}})

	require.NotNil(t, pushed)
	assert.Equal(t, notification.EventTrade, pushed.Event)
	var got notification.Notification
	require.NoError(t, json.Unmarshal(pushed.Data, &got))
	assert.Equal(t, "Bob hat den Handel abgebrochen.", got.Text)
	assert.Equal(t, "de-DE", got.Locale)
	assert.Equal(t, now, got.CreatedAt)
}

func TestService_OfflineParticipantKeepsBacklog(t *testing.T) {
	ctrl := gomock.NewController(t)
	hub := mocks.NewMockSSEHub(ctrl)
	svc := NewService(newCatalog(t), hub, "en-US", nil, zerolog.Nop())
	svc.backlogSize = 2
	alice := uuid.New()

	hub.EXPECT().SendToParticipant(alice, gomock.Any()).Return(notification.ErrClientNotFound).Times(3)

	svc.Notify(alice, trade.Message{Key: trade.MsgYouAbortedTrade})
	svc.Notify(alice, trade.Message{Key: trade.MsgTradeSucceeded})
	svc.Notify(alice, trade.Message{Key: trade.MsgNotEnoughMoneyYou})

	recent := svc.Recent(alice)
	require.Len(t, recent, 2)
	assert.Equal(t, "Trade succeeded!", recent[0].Text)
	assert.Equal(t, trade.MsgNotEnoughMoneyYou, recent[1].Key)

	svc.Forget(alice)
	assert.Empty(t, svc.Recent(alice))
}

func TestService_Locale(t *testing.T) {
	svc := NewService(newCatalog(t), nil, "en-US", nil, zerolog.Nop())
	alice := uuid.New()

	assert.Equal(t, "en-US", svc.Locale(alice))
	svc.SetLocale(alice, "de-DE")
	assert.Equal(t, "de-DE", svc.Locale(alice))
	svc.SetLocale(alice, "")
	assert.Equal(t, "en-US", svc.Locale(alice))

	svc.Notify(alice, trade.Message{Key: trade.MsgTradeSucceeded})
	assert.Len(t, svc.Recent(alice), 1)
}
