package trade

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MoneyTiers are the configured increments of the money controls.
type MoneyTiers struct {
	Small  int64
	Medium int64
	Large  int64
}

func (t MoneyTiers) amount(tier MoneyTier) int64 {
	switch tier {
	case MoneyTierSmall:
		return t.Small
	case MoneyTierMedium:
		return t.Medium
	case MoneyTierLarge:
		return t.Large
	}
	return 0
}

// Settings are fixed for every session opened by a registry.
type Settings struct {
	MoneyEnabled bool
	NoDebts      bool
	Tiers        MoneyTiers
}

// Deps are the collaborators sessions talk to. Economy may be nil, which
// disables money for every session.
type Deps struct {
	Inventory Inventory
	Economy   Economy
	Notifier  Notifier
	Sinks     []EventSink
	Now       func() time.Time
}

// Registry tracks the active sessions and guarantees a participant is in at
// most one of them.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	settings Settings
	deps     Deps
	logger   zerolog.Logger
}

// NewRegistry creates an empty session registry.
func NewRegistry(settings Settings, deps Deps, logger zerolog.Logger) *Registry {
	if deps.Economy == nil {
		settings.MoneyEnabled = false
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		settings: settings,
		deps:     deps,
		logger:   logger.With().Str("component", "session_registry").Logger(),
	}
}

// MoneyEnabled reports whether new sessions will support money offers.
func (r *Registry) MoneyEnabled() bool {
	return r.settings.MoneyEnabled
}

// Open starts a session between p1 and p2 and opens both views.
func (r *Registry) Open(p1, p2 uuid.UUID) (*Session, error) {
	if p1 == p2 {
		return nil, ErrSameParticipant
	}
	r.mu.Lock()
	if r.activeSessionOfLocked(p1) != nil || r.activeSessionOfLocked(p2) != nil {
		r.mu.Unlock()
		return nil, ErrAlreadyInSession
	}
	s := newSession(r, p1, p2)
	r.sessions[s.id] = s
	r.mu.Unlock()

	r.deps.Inventory.OpenView(p1, s.id)
	r.deps.Inventory.OpenView(p2, s.id)
	r.logger.Info().
		Str("session_id", s.id.String()).
		Str("participant_a", p1.String()).
		Str("participant_b", p2.String()).
		Bool("money", s.moneyEnabled).
		Msg("trade opened")
	r.publish(s.event(EventOpened, uuid.Nil, [2][]ItemStack{}, [2]int64{}))
	return s, nil
}

// ActiveSessionOf returns the participant's session, or nil.
func (r *Registry) ActiveSessionOf(participant uuid.UUID) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeSessionOfLocked(participant)
}

func (r *Registry) activeSessionOfLocked(participant uuid.UUID) *Session {
	for _, s := range r.sessions {
		if s.participants[0] == participant || s.participants[1] == participant {
			return s
		}
	}
	return nil
}

// Get returns the active session with the given id, or nil.
func (r *Registry) Get(sessionID uuid.UUID) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[sessionID]
}

// Close removes the session. Closing an unknown or already closed session is a no-op.
func (r *Registry) Close(s *Session) bool {
	if s == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.id]; !ok {
		return false
	}
	delete(r.sessions, s.id)
	return true
}

// Active returns a snapshot of the active sessions.
func (r *Registry) Active() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

// Len returns the number of active sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) publish(evt Event) {
	for _, sink := range r.deps.Sinks {
		sink.Publish(evt)
	}
}
