package pickup

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/barterhub/barterhub/internal/clock"
	"github.com/barterhub/barterhub/internal/domain/trade"
)

// Sessions reports which participants are trading right now.
type Sessions interface {
	ActiveSessionOf(participant uuid.UUID) *trade.Session
}

// Policy decides who may pick up items lying on the ground. Participants in
// an active session pick up nothing, and items dropped for an owner stay
// reserved for that owner until the protection window has passed.
type Policy struct {
	protection time.Duration
	sessions   Sessions
	clock      clock.Clock
	logger     zerolog.Logger
}

// NewPolicy creates a pickup policy. A protection of zero makes dropped items
// free for everyone immediately.
func NewPolicy(protection time.Duration, sessions Sessions, c clock.Clock, logger zerolog.Logger) *Policy {
	if c == nil {
		c = clock.Real()
	}
	return &Policy{
		protection: protection,
		sessions:   sessions,
		clock:      c,
		logger:     logger.With().Str("service", "pickup").Logger(),
	}
}

// Allow reports whether picker may collect an item carrying tag.
func (p *Policy) Allow(picker uuid.UUID, tag *trade.OwnerTag) bool {
	if p.sessions != nil && p.sessions.ActiveSessionOf(picker) != nil {
		p.logger.Debug().Str("picker", picker.String()).Msg("pickup denied while trading")
		return false
	}
	if tag == nil || tag.Owner == picker {
		return true
	}
	return !p.clock.Now().Before(tag.DroppedAt.Add(p.protection))
}
