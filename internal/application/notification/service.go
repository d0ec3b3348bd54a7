package notification

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/barterhub/barterhub/internal/clock"
	"github.com/barterhub/barterhub/internal/domain/notification"
	"github.com/barterhub/barterhub/internal/domain/trade"
)

// DefaultBacklog is how many recent notifications are kept per participant.
const DefaultBacklog = 50

// Renderer turns a message key and its arguments into text for a locale.
type Renderer interface {
	Render(locale, key string, args ...any) string
}

// Service renders trade messages in each participant's locale and pushes them
// to their SSE connections. It implements trade.Notifier.
type Service struct {
	renderer      Renderer
	hub           notification.SSEHub
	clock         clock.Clock
	defaultLocale string
	backlogSize   int

	mu      sync.Mutex
	locales map[uuid.UUID]string
	backlog map[uuid.UUID][]notification.Notification

	logger zerolog.Logger
}

// NewService creates a notification service.
func NewService(renderer Renderer, hub notification.SSEHub, defaultLocale string, c clock.Clock, logger zerolog.Logger) *Service {
	if c == nil {
		c = clock.Real()
	}
	return &Service{
		renderer:      renderer,
		hub:           hub,
		clock:         c,
		defaultLocale: defaultLocale,
		backlogSize:   DefaultBacklog,
		locales:       make(map[uuid.UUID]string),
		backlog:       make(map[uuid.UUID][]notification.Notification),
		logger:        logger.With().Str("service", "notification").Logger(),
	}
}

// SetLocale sets the participant's preferred locale. An empty locale restores
// the default.
func (s *Service) SetLocale(participant uuid.UUID, locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if locale == "" {
		delete(s.locales, participant)
		return
	}
	s.locales[participant] = locale
}

// Locale returns the participant's locale.
func (s *Service) Locale(participant uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if locale, ok := s.locales[participant]; ok {
		return locale
	}
	return s.defaultLocale
}

// Notify renders msg and delivers it. It never blocks.
func (s *Service) Notify(participant uuid.UUID, msg trade.Message) {
	locale := s.Locale(participant)
	n := notification.Notification{
		ID:          uuid.New(),
		Participant: participant,
		Key:         msg.Key,
		Args:        msg.Args,
		Locale:      locale,
		Text:        s.renderer.Render(locale, msg.Key, msg.Args...),
		CreatedAt:   s.clock.Now(),
	}
	s.remember(n)

	if s.hub == nil {
		return
	}
	data, err := json.Marshal(n)
	if err != nil {
		s.logger.Error().Err(err).Str("key", msg.Key).Msg("failed to encode notification")
		return
	}
	err = s.hub.SendToParticipant(participant, notification.NewSSEMessage(notification.EventTrade, data))
	switch {
	case err == nil:
	case errors.Is(err, notification.ErrClientNotFound):
		s.logger.Debug().Str("participant", participant.String()).Str("key", msg.Key).Msg("participant not connected")
	default:
		s.logger.Warn().Err(err).Str("participant", participant.String()).Str("key", msg.Key).Msg("failed to push notification")
	}
}

func (s *Service) remember(n notification.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.backlog[n.Participant], n)
	if len(list) > s.backlogSize {
		list = list[len(list)-s.backlogSize:]
	}
	s.backlog[n.Participant] = list
}

// Recent returns the participant's latest notifications, oldest first.
func (s *Service) Recent(participant uuid.UUID) []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notification.Notification(nil), s.backlog[participant]...)
}

// Forget drops the participant's locale and backlog.
func (s *Service) Forget(participant uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locales, participant)
	delete(s.backlog, participant)
}
