package trade

import "errors"

var (
	ErrSelfTrade          = errors.New("cannot trade with yourself")
	ErrParticipantOffline = errors.New("participant is not online")
	ErrOtherWorld         = errors.New("participant is in another world")
	ErrTooFarAway         = errors.New("participant is too far away")
	ErrSleeping           = errors.New("trading is not possible while sleeping")
	ErrRequestCooldown    = errors.New("too many trade requests")
	ErrVetoed             = errors.New("trade vetoed")
	ErrNoPendingRequest   = errors.New("no pending trade request")
	ErrNoActiveSession    = errors.New("participant is not trading")
	ErrItemBlacklisted    = errors.New("item cannot be traded")
)
