package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/barterhub/barterhub/internal/clock"
	"github.com/barterhub/barterhub/internal/domain/request"
	"github.com/barterhub/barterhub/internal/domain/trade"
)

// Config holds the request rules.
type Config struct {
	ThroughWorlds     bool
	WithHiddenPlayers bool
	// MaxDistance limits how far apart participants may be; 0 disables the check.
	MaxDistance     int
	RequestTimeout  time.Duration
	RequestCooldown time.Duration
}

// RequestResult is the outcome of a trade request that passed validation.
type RequestResult string

const (
	RequestOK             RequestResult = "OK"
	RequestAlreadyPending RequestResult = "ALREADY_PENDING"
	RequestTargetBusy     RequestResult = "TARGET_BUSY"
)

// Disruption is an external event that ends a participant's session.
type Disruption string

const (
	DisruptionDisconnect Disruption = "DISCONNECT"
	DisruptionDeath      Disruption = "DEATH"
	DisruptionViewClosed Disruption = "VIEW_CLOSED"
	DisruptionSleep      Disruption = "SLEEP"
)

// Snapshot is a participant's read-only picture of their session.
type Snapshot struct {
	SessionID    uuid.UUID              `json:"sessionId"`
	Participants [2]uuid.UUID           `json:"participants"`
	Phase        trade.Phase            `json:"phase"`
	Status       trade.Status           `json:"status"`
	MoneyEnabled bool                   `json:"moneyEnabled"`
	View         trade.View             `json:"view"`
	Offers       [2]trade.OfferSnapshot `json:"offers"`
	OpenedAt     time.Time              `json:"openedAt"`
}

// Deps are the collaborators of the trade service. Items is optional.
type Deps struct {
	Sessions  *trade.Registry
	Worker    *Worker
	Directory trade.Directory
	Storage   trade.Storage
	Inventory trade.Inventory
	Notifier  trade.Notifier
	Items     trade.ItemFilter
	Clock     clock.Clock
}

// Service exposes the trade operations. Every mutation runs on the worker.
type Service struct {
	sessions  *trade.Registry
	requests  *request.Registry
	worker    *Worker
	directory trade.Directory
	storage   trade.Storage
	inventory trade.Inventory
	notifier  trade.Notifier
	items     trade.ItemFilter
	clock     clock.Clock
	cfg       Config

	lastRequest    map[uuid.UUID]time.Time
	requestFilters []RequestFilter
	acceptFilters  []AcceptFilter
	logger         zerolog.Logger
}

// NewService creates a trade service.
func NewService(deps Deps, cfg Config, logger zerolog.Logger) *Service {
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	s := &Service{
		sessions:    deps.Sessions,
		worker:      deps.Worker,
		directory:   deps.Directory,
		storage:     deps.Storage,
		inventory:   deps.Inventory,
		notifier:    deps.Notifier,
		items:       deps.Items,
		clock:       deps.Clock,
		cfg:         cfg,
		lastRequest: make(map[uuid.UUID]time.Time),
		logger:      logger.With().Str("service", "trade").Logger(),
	}
	s.requests = request.NewRegistry(s.handleExpired, logger,
		request.WithTimeout(cfg.RequestTimeout),
		request.WithClock(deps.Clock),
		request.WithSubmit(func(fn func()) {
			if !s.worker.Submit(fn) {
				s.logger.Debug().Msg("dropping invitation expiry, worker stopped")
			}
		}),
	)
	return s
}

// AddRequestFilter registers a veto for new requests. Filters must be added
// before the service is used.
func (s *Service) AddRequestFilter(f RequestFilter) {
	s.requestFilters = append(s.requestFilters, f)
}

// AddAcceptFilter registers a veto for accepted requests.
func (s *Service) AddAcceptFilter(f AcceptFilter) {
	s.acceptFilters = append(s.acceptFilters, f)
}

func (s *Service) run(ctx context.Context, fn func() error) error {
	var opErr error
	if err := s.worker.Do(ctx, func() { opErr = fn() }); err != nil {
		return err
	}
	return opErr
}

// RequestTrade invites target to trade with requester.
func (s *Service) RequestTrade(ctx context.Context, requester, target uuid.UUID) (RequestResult, error) {
	var result RequestResult
	err := s.run(ctx, func() error {
		var err error
		result, err = s.requestTrade(requester, target)
		return err
	})
	return result, err
}

func (s *Service) requestTrade(requester, target uuid.UUID) (RequestResult, error) {
	if requester == target {
		s.notify(requester, msgCannotTradeWithYourself)
		return "", ErrSelfTrade
	}
	from, ok := s.directory.Presence(requester)
	if !ok || !from.Online {
		return "", ErrParticipantOffline
	}
	targetName := s.directory.DisplayName(target)
	to, ok := s.directory.Presence(target)
	if !ok || !to.Online || (!to.Visible && !s.cfg.WithHiddenPlayers) {
		s.notify(requester, msgPlayerNotOnline, targetName)
		return "", ErrParticipantOffline
	}

	if inv, ok := s.requests.Pending(target); ok && inv.Requester == requester {
		inv, _ = s.requests.Invite(requester, target)
		s.logger.Debug().
			Str("requester", requester.String()).
			Str("target", target.String()).
			Time("expires_at", inv.ExpiresAt).
			Msg("trade request refreshed")
		return RequestAlreadyPending, nil
	}

	now := s.clock.Now()
	if last, ok := s.lastRequest[requester]; ok && now.Sub(last) < s.cfg.RequestCooldown {
		s.notify(requester, msgNoRequestSpam)
		return "", ErrRequestCooldown
	}

	if err := s.checkWorld(requester, targetName, from, to); err != nil {
		return "", err
	}
	if err := s.checkDistance(requester, targetName, from, to); err != nil {
		return "", err
	}

	if s.sessions.ActiveSessionOf(requester) != nil || s.sessions.ActiveSessionOf(target) != nil {
		s.notify(requester, msgTradeNotPossible)
		return RequestTargetBusy, nil
	}

	s.lastRequest[requester] = now
	for _, filter := range s.requestFilters {
		if err := filter(requester, target); err != nil {
			s.logger.Debug().Err(err).Str("requester", requester.String()).Msg("trade request vetoed")
			return "", fmt.Errorf("%w: %v", ErrVetoed, err)
		}
	}

	inv, outcome := s.requests.Invite(requester, target)
	s.notify(requester, msgSuccessfullyRequested, targetName)
	s.notify(target, msgPlayerWantsToTrade, s.directory.DisplayName(requester))
	s.logger.Info().
		Str("requester", requester.String()).
		Str("target", target.String()).
		Str("outcome", string(outcome)).
		Time("expires_at", inv.ExpiresAt).
		Msg("trade requested")
	return RequestOK, nil
}

func (s *Service) checkWorld(notifyTo uuid.UUID, otherName string, a, b trade.Presence) error {
	if s.cfg.ThroughWorlds || a.World == b.World {
		return nil
	}
	s.notify(notifyTo, msgPlayerInOtherWorld, otherName)
	return ErrOtherWorld
}

func (s *Service) checkDistance(notifyTo uuid.UUID, otherName string, a, b trade.Presence) error {
	limit := float64(s.cfg.MaxDistance)
	if s.cfg.ThroughWorlds || limit <= 0 || a.DistanceSquared(b) <= limit*limit {
		return nil
	}
	s.notify(notifyTo, msgPlayerTooFarAway, otherName, s.cfg.MaxDistance)
	return ErrTooFarAway
}

// ResolveRequest accepts or denies target's pending invitation. On accept it
// returns the id of the opened session.
func (s *Service) ResolveRequest(ctx context.Context, target uuid.UUID, accepted bool) (uuid.UUID, error) {
	if accepted {
		return s.AcceptRequest(ctx, target)
	}
	return uuid.Nil, s.DenyRequest(ctx, target)
}

// AcceptRequest accepts target's pending invitation and opens the session
// after checking again that both participants can still trade.
func (s *Service) AcceptRequest(ctx context.Context, target uuid.UUID) (uuid.UUID, error) {
	var sessionID uuid.UUID
	err := s.run(ctx, func() error {
		var err error
		sessionID, err = s.acceptRequest(target)
		return err
	})
	return sessionID, err
}

func (s *Service) acceptRequest(target uuid.UUID) (uuid.UUID, error) {
	inv, ok := s.requests.Resolve(target, true)
	if !ok {
		s.notify(target, msgNoTradeToAccept)
		return uuid.Nil, ErrNoPendingRequest
	}
	requester := inv.Requester
	requesterName := s.directory.DisplayName(requester)

	from, ok := s.directory.Presence(requester)
	if !ok || !from.Online {
		s.notify(target, msgPlayerNotOnline, requesterName)
		return uuid.Nil, ErrParticipantOffline
	}
	to, ok := s.directory.Presence(target)
	if !ok || !to.Online {
		return uuid.Nil, ErrParticipantOffline
	}
	if err := s.checkWorld(target, requesterName, to, from); err != nil {
		return uuid.Nil, err
	}
	if from.Sleeping || to.Sleeping {
		s.notify(target, msgNotPossibleInBed)
		return uuid.Nil, ErrSleeping
	}
	if err := s.checkDistance(target, requesterName, to, from); err != nil {
		return uuid.Nil, err
	}
	for _, filter := range s.acceptFilters {
		if err := filter(requester, target); err != nil {
			s.logger.Debug().Err(err).Str("target", target.String()).Msg("trade accept vetoed")
			return uuid.Nil, fmt.Errorf("%w: %v", ErrVetoed, err)
		}
	}

	sess, err := s.sessions.Open(target, requester)
	if err != nil {
		if errors.Is(err, trade.ErrAlreadyInSession) {
			s.notify(requester, msgTradeNotPossible)
		}
		return uuid.Nil, err
	}
	return sess.ID(), nil
}

// DenyRequest drops target's pending invitation.
func (s *Service) DenyRequest(ctx context.Context, target uuid.UUID) error {
	return s.run(ctx, func() error {
		if _, ok := s.requests.Resolve(target, false); !ok {
			s.notify(target, msgNoTradeToDeny)
			return ErrNoPendingRequest
		}
		s.notify(target, msgTradeDenied)
		return nil
	})
}

func (s *Service) handleExpired(inv request.Invitation) {
	s.logger.Info().
		Str("requester", inv.Requester.String()).
		Str("target", inv.Target.String()).
		Msg("trade request expired")
	s.notify(inv.Requester, msgRequestNotAccepted)
}

// PendingRequest returns target's pending invitation, if any.
func (s *Service) PendingRequest(target uuid.UUID) (request.Invitation, bool) {
	return s.requests.Pending(target)
}

// ActiveSessionOf returns the id of participant's active session.
func (s *Service) ActiveSessionOf(participant uuid.UUID) (uuid.UUID, bool) {
	sess := s.sessions.ActiveSessionOf(participant)
	if sess == nil {
		return uuid.Nil, false
	}
	return sess.ID(), true
}

// Session returns participant's view of their active session.
func (s *Service) Session(ctx context.Context, participant uuid.UUID) (Snapshot, error) {
	var snap Snapshot
	err := s.run(ctx, func() error {
		sess := s.sessions.ActiveSessionOf(participant)
		if sess == nil {
			return ErrNoActiveSession
		}
		var err error
		snap, err = snapshotOf(sess, participant)
		return err
	})
	return snap, err
}

func snapshotOf(sess *trade.Session, participant uuid.UUID) (Snapshot, error) {
	view, err := sess.View(participant)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{
		SessionID:    sess.ID(),
		Participants: sess.Participants(),
		Phase:        sess.Phase(),
		Status:       sess.Status(),
		MoneyEnabled: sess.MoneyEnabled(),
		View:         view,
		OpenedAt:     sess.OpenedAt(),
	}
	for i, p := range snap.Participants {
		if snap.Offers[i], err = sess.Offer(p); err != nil {
			return Snapshot{}, err
		}
	}
	return snap, nil
}

// ClickSlot routes a click of participant at pos and applies ready, abort and
// money decisions. Edit decisions are returned for the caller to carry out
// with StageItem or UnstageItem. A primary click raises money, any other
// click lowers it.
func (s *Service) ClickSlot(ctx context.Context, participant uuid.UUID, pos int, primary bool) (trade.Decision, error) {
	var decision trade.Decision
	err := s.run(ctx, func() error {
		sess := s.sessions.ActiveSessionOf(participant)
		if sess == nil {
			return ErrNoActiveSession
		}
		var err error
		if decision, err = sess.Route(participant, pos); err != nil {
			return err
		}
		switch decision.Action {
		case trade.ActionReady:
			return sess.Approve(ctx, participant)
		case trade.ActionAbort:
			sess.Abort(participant)
		case trade.ActionMoney:
			_, err = sess.ChangeMoney(participant, decision.Tier, primary)
			return err
		}
		return nil
	})
	return decision, err
}

// StageItem moves the stack at storageIndex of participant's storage to offer
// position pos. A stack already at pos goes back to storageIndex.
func (s *Service) StageItem(ctx context.Context, participant uuid.UUID, storageIndex, pos int) error {
	return s.run(ctx, func() error {
		sess := s.sessions.ActiveSessionOf(participant)
		if sess == nil {
			return ErrNoActiveSession
		}
		decision, err := sess.Route(participant, pos)
		if err != nil {
			return err
		}
		if decision.Action != trade.ActionEdit {
			return trade.ErrPolicyViolation
		}
		stack, err := s.storage.TakeStack(participant, storageIndex)
		if err != nil {
			return err
		}
		if stack.IsEmpty() {
			return nil
		}
		if s.items != nil && s.items.Blocked(stack) {
			s.storage.RestoreStack(participant, storageIndex, stack)
			s.notify(participant, msgItemBlacklisted, stack.Type)
			return ErrItemBlacklisted
		}
		prev, err := sess.Stage(participant, pos, stack)
		if err != nil {
			s.storage.RestoreStack(participant, storageIndex, stack)
			return err
		}
		if !prev.IsEmpty() {
			s.storage.RestoreStack(participant, storageIndex, prev)
		}
		return nil
	})
}

// UnstageItem takes the stack at offer position pos back into storage.
func (s *Service) UnstageItem(ctx context.Context, participant uuid.UUID, pos int) error {
	return s.run(ctx, func() error {
		sess := s.sessions.ActiveSessionOf(participant)
		if sess == nil {
			return ErrNoActiveSession
		}
		prev, err := sess.Stage(participant, pos, trade.ItemStack{})
		if err != nil {
			return err
		}
		s.give(participant, prev)
		return nil
	})
}

// AbortSession aborts a session. initiator may be uuid.Nil for a silent abort.
func (s *Service) AbortSession(ctx context.Context, sessionID, initiator uuid.UUID) (bool, error) {
	var aborted bool
	err := s.run(ctx, func() error {
		sess := s.sessions.Get(sessionID)
		if sess == nil {
			return ErrNoActiveSession
		}
		aborted = sess.Abort(initiator)
		return nil
	})
	return aborted, err
}

// HandleDisruption aborts participant's session after an external event. A
// disconnect also drops every invitation sent by or to the participant.
func (s *Service) HandleDisruption(ctx context.Context, participant uuid.UUID, d Disruption) error {
	return s.run(ctx, func() error {
		if d == DisruptionDisconnect {
			if n := s.requests.Drop(participant); n > 0 {
				s.logger.Debug().Str("participant", participant.String()).Int("dropped", n).Msg("dropped invitations")
			}
			delete(s.lastRequest, participant)
		}
		sess := s.sessions.ActiveSessionOf(participant)
		if sess == nil {
			return nil
		}
		s.logger.Info().
			Str("participant", participant.String()).
			Str("disruption", string(d)).
			Str("session_id", sess.ID().String()).
			Msg("aborting trade after disruption")
		sess.Abort(participant)
		return nil
	})
}

// Shutdown silently aborts every active session and drops all invitations.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.run(ctx, func() error {
		active := s.sessions.Active()
		for _, sess := range active {
			sess.Abort(uuid.Nil)
		}
		s.requests.Close()
		s.logger.Info().Int("aborted", len(active)).Msg("trade service shut down")
		return nil
	})
}

func (s *Service) give(participant uuid.UUID, stack trade.ItemStack) {
	if stack.IsEmpty() {
		return
	}
	leftovers := s.inventory.AddItems(participant, stack)
	tag := trade.OwnerTag{Owner: participant, DroppedAt: s.clock.Now()}
	for _, left := range leftovers {
		s.inventory.Drop(participant, left, tag)
	}
}

func (s *Service) notify(participant uuid.UUID, key string, args ...any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(participant, trade.Message{Key: key, Args: args})
}
