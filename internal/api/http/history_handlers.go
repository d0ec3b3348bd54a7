package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/barterhub/barterhub/internal/domain/history"
)

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	var filter history.Filter
	q := r.URL.Query()
	if v := q.Get("participant"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid participant")
			return
		}
		filter.Participant = &id
	}
	if v := q.Get("outcome"); v != "" {
		outcome := history.Outcome(v)
		switch outcome {
		case history.OutcomeSettled, history.OutcomeAborted, history.OutcomeInsolvent:
		default:
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid outcome")
			return
		}
		filter.Outcome = &outcome
	}
	if v := q.Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "since must be RFC3339")
			return
		}
		filter.Since = &since
	}
	limit, offset := parseLimitOffset(r)
	records, err := s.historySvc.List(contextFromRequest(r), filter, limit, offset)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

func (s *Server) historyStats(w http.ResponseWriter, r *http.Request) {
	stored, err := s.historySvc.Stats(contextFromRequest(r))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"stored":  stored,
		"process": s.historySvc.Counters(),
		"dropped": s.historySvc.Dropped(),
	})
}
