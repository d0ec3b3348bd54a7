package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	appTrade "github.com/barterhub/barterhub/internal/application/trade"
)

type tradeRequest struct {
	Target uuid.UUID `json:"target"`
}

type clickRequest struct {
	Position int   `json:"position"`
	Primary  *bool `json:"primary,omitempty"`
}

type stageRequest struct {
	StorageIndex int `json:"storageIndex"`
	Position     int `json:"position"`
}

type unstageRequest struct {
	Position int `json:"position"`
}

type disruptionRequest struct {
	Type appTrade.Disruption `json:"type"`
}

type abortRequest struct {
	Initiator uuid.UUID `json:"initiator"`
}

func (s *Server) requestTrade(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	var req tradeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	result, err := s.tradeSvc.RequestTrade(contextFromRequest(r), id, req.Target)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	status := http.StatusAccepted
	if result == appTrade.RequestTargetBusy {
		status = http.StatusConflict
	}
	respondJSON(w, status, map[string]interface{}{"result": result})
}

func (s *Server) getPendingRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	inv, ok := s.tradeSvc.PendingRequest(id)
	if !ok {
		respondError(w, http.StatusNotFound, "NO_PENDING_REQUEST", appTrade.ErrNoPendingRequest.Error())
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

func (s *Server) acceptRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	sessionID, err := s.tradeSvc.AcceptRequest(contextFromRequest(r), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"sessionId": sessionID})
}

func (s *Server) denyRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	if err := s.tradeSvc.DenyRequest(contextFromRequest(r), id); err != nil {
		s.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	snap, err := s.tradeSvc.Session(contextFromRequest(r), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) clickSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	var req clickRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	primary := req.Primary == nil || *req.Primary
	decision, err := s.tradeSvc.ClickSlot(contextFromRequest(r), id, req.Position, primary)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, decision)
}

func (s *Server) stageItem(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	var req stageRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if err := s.tradeSvc.StageItem(contextFromRequest(r), id, req.StorageIndex, req.Position); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondSession(w, r, id)
}

func (s *Server) unstageItem(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	var req unstageRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if err := s.tradeSvc.UnstageItem(contextFromRequest(r), id, req.Position); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondSession(w, r, id)
}

func (s *Server) respondSession(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	snap, err := s.tradeSvc.Session(contextFromRequest(r), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

func (s *Server) reportDisruption(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	var req disruptionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	switch req.Type {
	case appTrade.DisruptionDisconnect, appTrade.DisruptionDeath, appTrade.DisruptionViewClosed, appTrade.DisruptionSleep:
	default:
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "unknown disruption type")
		return
	}
	if err := s.tradeSvc.HandleDisruption(contextFromRequest(r), id, req.Type); err != nil {
		s.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// abortSession aborts a session. Without an initiator the abort is silent.
func (s *Server) abortSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseUUIDParam(r, "sessionId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid sessionId")
		return
	}
	var req abortRequest
	if r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
			return
		}
	}
	aborted, err := s.tradeSvc.AbortSession(contextFromRequest(r), sessionID, req.Initiator)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"aborted": aborted})
}
