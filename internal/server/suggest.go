package server

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/lazypower/memoria/internal/memory"
	"github.com/lazypower/memoria/internal/suggest"
)

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Title     string `json:"title"`
		Theme     string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	theme, err := memory.ParseTheme(req.Theme)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session := req.SessionID
	if session == "" {
		session = clientHost(r)
	}

	msg, err := s.sessions.Trigger(r.Context(), session, req.Title, theme)
	switch {
	case errors.Is(err, suggest.ErrNoTitle):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, suggest.ErrInFlight):
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// clientHost identifies an editor without a session id by its address.
// RealIP has already applied proxy headers; the port changes with every
// connection, so it is dropped.
func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
