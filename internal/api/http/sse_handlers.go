package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/barterhub/barterhub/internal/domain/notification"
)

// streamNotifications streams a participant's notifications as server-sent
// events. A locale query parameter updates the participant's preference.
func (s *Server) streamNotifications(w http.ResponseWriter, r *http.Request) {
	id, ok := participantParam(w, r)
	if !ok {
		return
	}
	if _, err := s.world.Participant(id); err != nil {
		s.respondServiceError(w, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "streaming not supported")
		return
	}
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = uuid.NewString()
	}
	if locale := r.URL.Query().Get("locale"); locale != "" {
		s.notificationSvc.SetLocale(id, locale)
	}
	client := notification.NewSSEClient(clientID, id, s.notificationSvc.Locale(id))
	s.sseHub.Register(client)
	defer s.sseHub.Unregister(clientID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case msg, open := <-client.MessageChan:
			if !open || msg == nil {
				return
			}
			payload, _ := json.Marshal(msg)
			_, _ = w.Write([]byte("event: " + msg.Event + "\ndata: "))
			_, _ = w.Write(payload)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}
