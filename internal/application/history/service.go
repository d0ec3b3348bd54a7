package history

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/barterhub/barterhub/internal/domain/history"
	"github.com/barterhub/barterhub/internal/domain/trade"
)

const (
	defaultLimit = 50
	maxLimit     = 200
	drainTimeout = 5 * time.Second
)

// Service records finished sessions and answers history queries. It is a
// trade.EventSink: Publish never blocks the trade worker.
type Service struct {
	repo   history.Repository
	events chan trade.Event

	settled   atomic.Int64
	aborted   atomic.Int64
	insolvent atomic.Int64
	dropped   atomic.Int64

	logger zerolog.Logger
}

// NewService creates a history service with an event buffer of the given size.
func NewService(repo history.Repository, buffer int, logger zerolog.Logger) *Service {
	if buffer <= 0 {
		buffer = 128
	}
	return &Service{
		repo:   repo,
		events: make(chan trade.Event, buffer),
		logger: logger.With().Str("service", "history").Logger(),
	}
}

// Publish counts terminal events and queues them for storage.
func (s *Service) Publish(evt trade.Event) {
	switch evt.Type {
	case trade.EventSettled:
		s.settled.Add(1)
	case trade.EventAborted:
		s.aborted.Add(1)
	case trade.EventInsolvent:
		s.insolvent.Add(1)
	default:
		return
	}
	select {
	case s.events <- evt:
	default:
		s.dropped.Add(1)
		s.logger.Warn().Str("session_id", evt.SessionID.String()).Msg("history buffer full, event dropped")
	}
}

// Run stores queued events until ctx is cancelled, then flushes what is left.
func (s *Service) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-s.events:
			s.store(ctx, evt)
		case <-ctx.Done():
			s.flush()
			return nil
		}
	}
}

func (s *Service) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case evt := <-s.events:
			s.store(ctx, evt)
		default:
			return
		}
	}
}

func (s *Service) store(ctx context.Context, evt trade.Event) {
	rec, err := history.FromEvent(evt)
	if err != nil {
		return
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error().Err(err).Str("session_id", evt.SessionID.String()).Msg("failed to store trade history")
	}
}

// Counters returns the outcomes seen by this process since start.
func (s *Service) Counters() history.Stats {
	return history.Stats{
		Settled:   s.settled.Load(),
		Aborted:   s.aborted.Load(),
		Insolvent: s.insolvent.Load(),
	}
}

// Dropped returns how many events did not fit the buffer.
func (s *Service) Dropped() int64 {
	return s.dropped.Load()
}

// List returns stored records, newest first.
func (s *Service) List(ctx context.Context, filter history.Filter, limit, offset int) ([]*history.Record, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		return nil, errors.New("offset must not be negative")
	}
	return s.repo.List(ctx, filter, limit, offset)
}

// Stats returns the stored outcome totals.
func (s *Service) Stats(ctx context.Context) (history.Stats, error) {
	return s.repo.Stats(ctx)
}
