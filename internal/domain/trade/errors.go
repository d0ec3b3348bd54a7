package trade

import "errors"

var (
	ErrAlreadyInSession = errors.New("participant is already trading")
	ErrSameParticipant  = errors.New("participant cannot trade with themselves")
	ErrNotParticipant   = errors.New("participant is not part of this trade")
	ErrPolicyViolation  = errors.New("action not permitted in the current trade state")
	ErrSessionClosed    = errors.New("trade session is closed")
	ErrSlotOutOfRange   = errors.New("position is not an offer slot")
)
