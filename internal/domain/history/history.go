package history

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/barterhub/barterhub/internal/domain/trade"
)

// Outcome is how a session ended.
type Outcome string

const (
	OutcomeSettled   Outcome = "SETTLED"
	OutcomeAborted   Outcome = "ABORTED"
	OutcomeInsolvent Outcome = "INSOLVENT"
)

var ErrNotTerminal = errors.New("event does not end a session")

// Record is one finished session. Items and Money are what each participant
// offered, index-aligned with Participants.
type Record struct {
	ID           int64                `json:"id"`
	SessionID    uuid.UUID            `json:"sessionId"`
	Participants [2]uuid.UUID         `json:"participants"`
	Initiator    *uuid.UUID           `json:"initiator,omitempty"`
	Outcome      Outcome              `json:"outcome"`
	Items        [2][]trade.ItemStack `json:"items"`
	Money        [2]int64             `json:"money"`
	EndedAt      time.Time            `json:"endedAt"`
}

// FromEvent converts a terminal lifecycle event into a record.
func FromEvent(evt trade.Event) (*Record, error) {
	var outcome Outcome
	switch evt.Type {
	case trade.EventSettled:
		outcome = OutcomeSettled
	case trade.EventAborted:
		outcome = OutcomeAborted
	case trade.EventInsolvent:
		outcome = OutcomeInsolvent
	default:
		return nil, ErrNotTerminal
	}
	rec := &Record{
		SessionID:    evt.SessionID,
		Participants: evt.Participants,
		Outcome:      outcome,
		Items:        evt.Items,
		Money:        evt.Money,
		EndedAt:      evt.At,
	}
	for i := range rec.Items {
		if rec.Items[i] == nil {
			rec.Items[i] = []trade.ItemStack{}
		}
	}
	if evt.Initiator != uuid.Nil {
		initiator := evt.Initiator
		rec.Initiator = &initiator
	}
	return rec, nil
}

// Involves reports whether participant took part in the session.
func (r *Record) Involves(participant uuid.UUID) bool {
	return r.Participants[0] == participant || r.Participants[1] == participant
}

// Stats are per-outcome counters.
type Stats struct {
	Settled   int64 `json:"settled"`
	Aborted   int64 `json:"aborted"`
	Insolvent int64 `json:"insolvent"`
}

// Filter narrows a history listing.
type Filter struct {
	Participant *uuid.UUID
	Outcome     *Outcome
	Since       *time.Time
}

// Matches reports whether r passes the filter.
func (f Filter) Matches(r *Record) bool {
	if f.Participant != nil && !r.Involves(*f.Participant) {
		return false
	}
	if f.Outcome != nil && r.Outcome != *f.Outcome {
		return false
	}
	if f.Since != nil && r.EndedAt.Before(*f.Since) {
		return false
	}
	return true
}
