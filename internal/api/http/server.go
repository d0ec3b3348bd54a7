package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appHistory "github.com/barterhub/barterhub/internal/application/history"
	appNotification "github.com/barterhub/barterhub/internal/application/notification"
	appTrade "github.com/barterhub/barterhub/internal/application/trade"
	"github.com/barterhub/barterhub/internal/domain/notification"
	"github.com/barterhub/barterhub/internal/domain/trade"
	"github.com/barterhub/barterhub/internal/infrastructure/memory"
)

// Deps are the services behind the HTTP surface. Ledger is nil when money is
// disabled.
type Deps struct {
	Trade         *appTrade.Service
	History       *appHistory.Service
	Notifications *appNotification.Service
	World         *memory.World
	Ledger        *memory.Ledger
	Hub           notification.SSEHub
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	tradeSvc        *appTrade.Service
	historySvc      *appHistory.Service
	notificationSvc *appNotification.Service
	world           *memory.World
	ledger          *memory.Ledger
	sseHub          notification.SSEHub
	logger          zerolog.Logger
}

func NewServer(deps Deps, logger zerolog.Logger) *Server {
	return &Server{
		tradeSvc:        deps.Trade,
		historySvc:      deps.History,
		notificationSvc: deps.Notifications,
		world:           deps.World,
		ledger:          deps.Ledger,
		sseHub:          deps.Hub,
		logger:          logger.With().Str("component", "http").Logger(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		// The event stream is long-lived and stays outside the request timeout.
		r.Get("/participants/{participantId}/stream", s.streamNotifications)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Route("/participants", func(r chi.Router) {
				r.Post("/", s.registerParticipant)
				r.Get("/", s.listParticipants)

				r.Route("/{participantId}", func(r chi.Router) {
					r.Get("/", s.getParticipant)
					r.Patch("/presence", s.updatePresence)
					r.Put("/locale", s.setLocale)
					r.Post("/items", s.grantItems)
					r.Post("/pickup", s.pickupItem)
					r.Get("/notifications", s.listNotifications)

					r.Get("/requests", s.getPendingRequest)
					r.Post("/requests", s.requestTrade)
					r.Post("/requests/accept", s.acceptRequest)
					r.Post("/requests/deny", s.denyRequest)

					r.Get("/session", s.getSession)
					r.Post("/session/clicks", s.clickSlot)
					r.Post("/session/stage", s.stageItem)
					r.Post("/session/unstage", s.unstageItem)
					r.Post("/disruptions", s.reportDisruption)
				})
			})

			r.Post("/sessions/{sessionId}/abort", s.abortSession)
			r.Get("/ground", s.listGround)

			r.Route("/history", func(r chi.Router) {
				r.Get("/", s.listHistory)
				r.Get("/stats", s.historyStats)
			})
		})
	})

	return r
}

// Helpers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{appTrade.ErrSelfTrade, http.StatusBadRequest, "SELF_TRADE"},
	{appTrade.ErrParticipantOffline, http.StatusConflict, "PARTICIPANT_OFFLINE"},
	{appTrade.ErrOtherWorld, http.StatusConflict, "OTHER_WORLD"},
	{appTrade.ErrTooFarAway, http.StatusConflict, "TOO_FAR_AWAY"},
	{appTrade.ErrSleeping, http.StatusConflict, "SLEEPING"},
	{appTrade.ErrRequestCooldown, http.StatusTooManyRequests, "REQUEST_COOLDOWN"},
	{appTrade.ErrVetoed, http.StatusForbidden, "VETOED"},
	{appTrade.ErrNoPendingRequest, http.StatusNotFound, "NO_PENDING_REQUEST"},
	{appTrade.ErrNoActiveSession, http.StatusNotFound, "NO_ACTIVE_SESSION"},
	{appTrade.ErrItemBlacklisted, http.StatusUnprocessableEntity, "ITEM_BLACKLISTED"},
	{appTrade.ErrWorkerStopped, http.StatusServiceUnavailable, "UNAVAILABLE"},
	{trade.ErrPolicyViolation, http.StatusConflict, "POLICY_VIOLATION"},
	{trade.ErrAlreadyInSession, http.StatusConflict, "ALREADY_IN_SESSION"},
	{trade.ErrSameParticipant, http.StatusBadRequest, "SELF_TRADE"},
	{trade.ErrSessionClosed, http.StatusConflict, "SESSION_CLOSED"},
	{trade.ErrNotParticipant, http.StatusForbidden, "NOT_PARTICIPANT"},
	{trade.ErrSlotOutOfRange, http.StatusBadRequest, "INVALID_PARAM"},
	{memory.ErrUnknownParticipant, http.StatusNotFound, "NOT_FOUND"},
	{memory.ErrGroundItemNotFound, http.StatusNotFound, "NOT_FOUND"},
	{memory.ErrNameTaken, http.StatusConflict, "NAME_TAKEN"},
	{memory.ErrInvalidName, http.StatusBadRequest, "INVALID_PARAM"},
	{memory.ErrIndexOutOfRange, http.StatusBadRequest, "INVALID_PARAM"},
	{memory.ErrEmptyPosition, http.StatusBadRequest, "INVALID_PARAM"},
	{memory.ErrPickupDenied, http.StatusForbidden, "PICKUP_DENIED"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "TIMEOUT"},
}

func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			respondError(w, m.status, m.code, err.Error())
			return
		}
	}
	s.logger.Error().Err(err).Msg("request failed")
	respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	return uuid.Parse(val)
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func contextFromRequest(r *http.Request) context.Context {
	return r.Context()
}

// participantParam parses the participant id and answers 400 when it is invalid.
func participantParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := parseUUIDParam(r, "participantId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid participantId")
		return uuid.Nil, false
	}
	return id, true
}

func parseLimitOffset(r *http.Request) (int, int) {
	limit, offset := 0, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			limit = l
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil && o > 0 {
			offset = o
		}
	}
	return limit, offset
}
