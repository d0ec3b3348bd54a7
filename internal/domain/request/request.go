package request

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/barterhub/barterhub/internal/clock"
)

// DefaultTimeout is how long an invitation waits for its target.
const DefaultTimeout = 30 * time.Second

// Invitation is an outstanding trade request awaiting a reply from Target.
type Invitation struct {
	ID        uuid.UUID `json:"id"`
	Requester uuid.UUID `json:"requester"`
	Target    uuid.UUID `json:"target"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Outcome describes what Invite did.
type Outcome string

const (
	OutcomeCreated        Outcome = "CREATED"
	OutcomeReplaced       Outcome = "REPLACED"
	OutcomeAlreadyPending Outcome = "ALREADY_PENDING"
)

type entry struct {
	inv   Invitation
	timer clock.Timer
}

// Registry holds at most one invitation per target. Expiry timers never touch
// state directly: they hand the expiry to submit, which is expected to run it
// on the same serialized worker as every other trade operation.
type Registry struct {
	mu       sync.Mutex
	pending  map[uuid.UUID]*entry
	timeout  time.Duration
	clock    clock.Clock
	submit   func(func())
	onExpire func(Invitation)
	logger   zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithClock overrides the real clock.
func WithClock(c clock.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// WithSubmit sets the function expiries are dispatched through. Without it
// they run on the timer goroutine.
func WithSubmit(submit func(func())) Option {
	return func(r *Registry) { r.submit = submit }
}

// NewRegistry creates a registry calling onExpire for every invitation that
// times out without being resolved or replaced.
func NewRegistry(onExpire func(Invitation), logger zerolog.Logger, opts ...Option) *Registry {
	r := &Registry{
		pending:  make(map[uuid.UUID]*entry),
		timeout:  DefaultTimeout,
		clock:    clock.Real(),
		onExpire: onExpire,
		logger:   logger.With().Str("component", "request_registry").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Invite records an invitation from requester to target, overwriting any
// pending one and restarting the timeout. Repeating a pending invitation from
// the same requester reports OutcomeAlreadyPending.
func (r *Registry) Invite(requester, target uuid.UUID) (Invitation, Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	outcome := OutcomeCreated
	if prev, ok := r.pending[target]; ok {
		prev.timer.Stop()
		outcome = OutcomeReplaced
		if prev.inv.Requester == requester {
			outcome = OutcomeAlreadyPending
		}
	}

	now := r.clock.Now()
	inv := Invitation{
		ID:        uuid.New(),
		Requester: requester,
		Target:    target,
		CreatedAt: now,
		ExpiresAt: now.Add(r.timeout),
	}
	id := inv.ID
	timer := r.clock.AfterFunc(r.timeout, func() {
		r.dispatch(func() { r.expire(target, id) })
	})
	r.pending[target] = &entry{inv: inv, timer: timer}

	r.logger.Debug().
		Str("requester", requester.String()).
		Str("target", target.String()).
		Str("outcome", string(outcome)).
		Msg("invitation recorded")
	return inv, outcome
}

// Resolve removes target's invitation and cancels its timer. accepted only
// affects logging; running the accepted action is up to the caller.
func (r *Registry) Resolve(target uuid.UUID, accepted bool) (Invitation, bool) {
	r.mu.Lock()
	e, ok := r.pending[target]
	if ok {
		delete(r.pending, target)
		e.timer.Stop()
	}
	r.mu.Unlock()
	if !ok {
		return Invitation{}, false
	}
	r.logger.Debug().Str("target", target.String()).Bool("accepted", accepted).Msg("invitation resolved")
	return e.inv, true
}

// Pending returns target's invitation, if any.
func (r *Registry) Pending(target uuid.UUID) (Invitation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.pending[target]
	if !ok {
		return Invitation{}, false
	}
	return e.inv, true
}

// Drop removes every invitation sent by or to participant without expiring it.
func (r *Registry) Drop(participant uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for target, e := range r.pending {
		if target == participant || e.inv.Requester == participant {
			e.timer.Stop()
			delete(r.pending, target)
			n++
		}
	}
	return n
}

// Len returns the number of pending invitations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Close cancels every timer and drops all invitations.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for target, e := range r.pending {
		e.timer.Stop()
		delete(r.pending, target)
	}
}

func (r *Registry) dispatch(fn func()) {
	if r.submit != nil {
		r.submit(fn)
		return
	}
	fn()
}

// expire drops the invitation only if it is still the one the timer was
// started for; a replaced or resolved invitation is ignored.
func (r *Registry) expire(target, id uuid.UUID) {
	r.mu.Lock()
	e, ok := r.pending[target]
	if !ok || e.inv.ID != id {
		r.mu.Unlock()
		return
	}
	delete(r.pending, target)
	r.mu.Unlock()

	r.logger.Debug().Str("target", target.String()).Msg("invitation expired")
	if r.onExpire != nil {
		r.onExpire(e.inv)
	}
}
