package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	appTrade "github.com/barterhub/barterhub/internal/application/trade"
	"github.com/barterhub/barterhub/internal/domain/trade"
	"github.com/barterhub/barterhub/internal/infrastructure/memory"
)

type registerParticipantRequest struct {
	Name     string          `json:"name"`
	Presence *trade.Presence `json:"presence,omitempty"`
	Locale   string          `json:"locale,omitempty"`
}

type participantResponse struct {
	memory.ParticipantInfo
	Balance       *int64  `json:"balance,omitempty"`
	BalanceText   string  `json:"balanceText,omitempty"`
	Locale        string  `json:"locale"`
	ActiveSession *string `json:"activeSession,omitempty"`
}

type presenceUpdateRequest struct {
	Online   *bool    `json:"online,omitempty"`
	Visible  *bool    `json:"visible,omitempty"`
	Sleeping *bool    `json:"sleeping,omitempty"`
	World    *string  `json:"world,omitempty"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Z        *float64 `json:"z,omitempty"`
}

type localeRequest struct {
	Locale string `json:"locale"`
}

type grantItemsRequest struct {
	Items []trade.ItemStack `json:"items"`
}

type pickupRequest struct {
	ItemID uuid.UUID `json:"itemId"`
}

func (s *Server) registerParticipant(w http.ResponseWriter, r *http.Request) {
	var req registerParticipantRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	presence := trade.Presence{Online: true, Visible: true, World: "world"}
	if req.Presence != nil {
		presence = *req.Presence
	}
	id, err := s.world.Register(req.Name, presence)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if req.Locale != "" {
		s.notificationSvc.SetLocale(id, req.Locale)
	}
	s.respondParticipant(w, r, http.StatusCreated, id)
}

func (s *Server) listParticipants(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"participants": s.world.Participants()})
}

func (s *Server) getParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	s.respondParticipant(w, r, http.StatusOK, id)
}

func (s *Server) respondParticipant(w http.ResponseWriter, r *http.Request, status int, id uuid.UUID) {
	info, err := s.world.Participant(id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	resp := participantResponse{ParticipantInfo: info, Locale: s.notificationSvc.Locale(id)}
	if s.ledger != nil {
		balance, err := s.ledger.Balance(contextFromRequest(r), id)
		if err != nil {
			s.respondServiceError(w, err)
			return
		}
		resp.Balance = &balance
		resp.BalanceText = s.ledger.Format(balance)
	}
	if sessionID, ok := s.tradeSvc.ActiveSessionOf(id); ok {
		sid := sessionID.String()
		resp.ActiveSession = &sid
	}
	respondJSON(w, status, resp)
}

// updatePresence changes where a participant is. Going offline or to sleep
// ends their session like the matching disruption.
func (s *Server) updatePresence(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	var req presenceUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	var before, after trade.Presence
	err := s.world.UpdatePresence(id, func(p *trade.Presence) {
		before = *p
		applyPresence(p, req)
		after = *p
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	var disruption appTrade.Disruption
	switch {
	case before.Online && !after.Online:
		disruption = appTrade.DisruptionDisconnect
	case !before.Sleeping && after.Sleeping:
		disruption = appTrade.DisruptionSleep
	}
	if disruption != "" {
		if err := s.tradeSvc.HandleDisruption(contextFromRequest(r), id, disruption); err != nil {
			s.respondServiceError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, after)
}

func applyPresence(p *trade.Presence, req presenceUpdateRequest) {
	if req.Online != nil {
		p.Online = *req.Online
	}
	if req.Visible != nil {
		p.Visible = *req.Visible
	}
	if req.Sleeping != nil {
		p.Sleeping = *req.Sleeping
	}
	if req.World != nil {
		p.World = *req.World
	}
	if req.X != nil {
		p.X = *req.X
	}
	if req.Y != nil {
		p.Y = *req.Y
	}
	if req.Z != nil {
		p.Z = *req.Z
	}
}

func (s *Server) setLocale(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	var req localeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if _, err := s.world.Participant(id); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.notificationSvc.SetLocale(id, req.Locale)
	respondJSON(w, http.StatusOK, localeRequest{Locale: s.notificationSvc.Locale(id)})
}

func (s *Server) grantItems(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	var req grantItemsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	for _, stack := range req.Items {
		if stack.IsEmpty() || stack.Amount > trade.MaxStackSize {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "items need a type and an amount between 1 and 64")
			return
		}
	}
	leftovers, err := s.world.Grant(id, req.Items...)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"leftovers": leftovers})
}

func (s *Server) pickupItem(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	var req pickupRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	stack, err := s.world.Pickup(id, req.ItemID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stack)
}

func (s *Server) listGround(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": s.world.Ground()})
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"notifications": s.notificationSvc.Recent(id)})
}
