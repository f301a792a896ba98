package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lazypower/memoria/internal/codec"
	"github.com/lazypower/memoria/internal/gate"
	"github.com/lazypower/memoria/internal/memory"
	"github.com/lazypower/memoria/internal/metrics"
	"github.com/lazypower/memoria/internal/share"
)

// linkRequest names a memory by bare token or by full share URL.
type linkRequest struct {
	Token    string `json:"token"`
	URL      string `json:"url"`
	Password string `json:"password"`
}

func (s *Server) handleCreateMemory(w http.ResponseWriter, r *http.Request) {
	var draft memory.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	rec, err := memory.NewRecord(draft, time.Now())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	link, err := share.BuildURL(s.cfg.Server.PublicURL, rec, s.share)
	switch {
	case errors.Is(err, share.ErrTokenTooLong):
		writeError(w, http.StatusRequestEntityTooLarge, share.PublicMessage(err))
		return
	case err != nil:
		s.log.Error().Err(err).Str("kind", codec.KindOf(err).String()).Msg("encode memory")
		writeError(w, http.StatusUnprocessableEntity, "memory could not be encoded")
		return
	}

	_, token, _ := strings.Cut(link, "#")
	metrics.MemoriesEncoded.Inc()
	metrics.TokenBytes.Observe(float64(len(token)))

	writeJSON(w, http.StatusCreated, map[string]any{
		"token":      token,
		"url":        link,
		"created_at": rec.CreatedAt,
	})
}

func (s *Server) handleOpenMemory(w http.ResponseWriter, r *http.Request) {
	rec, _, ok := s.loadMemory(w, r)
	if !ok {
		return
	}

	g := gate.New(rec)
	if content, unlocked := g.Content(); unlocked {
		writeJSON(w, http.StatusOK, map[string]any{"locked": false, "memory": content})
		return
	}
	// Theme is presentation only; the lock screen is styled with it.
	writeJSON(w, http.StatusOK, map[string]any{"locked": true, "theme": rec.Theme})
}

func (s *Server) handleUnlockMemory(w http.ResponseWriter, r *http.Request) {
	rec, req, ok := s.loadMemory(w, r)
	if !ok {
		return
	}

	g := gate.New(rec)
	outcome := g.Attempt(req.Password)
	if rec.IsPrivate {
		metrics.UnlockAttempts.WithLabelValues(outcome.String()).Inc()
	}

	content, unlocked := g.Content()
	if !unlocked {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"granted": false,
			"error":   "incorrect password, try again",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"granted": true, "memory": content})
}

// loadMemory decodes the memory named by the request body. Every decode
// failure gets the same public message; the kind is only logged.
func (s *Server) loadMemory(w http.ResponseWriter, r *http.Request) (memory.Record, linkRequest, bool) {
	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return memory.Record{}, req, false
	}

	var rec memory.Record
	var err error
	if req.URL != "" {
		rec, err = share.LoadURL(req.URL)
	} else {
		rec, err = share.Load(req.Token)
	}
	if err != nil {
		if kind := codec.KindOf(err); kind != 0 {
			metrics.DecodeFailures.WithLabelValues(kind.String()).Inc()
			s.log.Debug().Err(err).Str("kind", kind.String()).Msg("decode memory")
		}
		writeError(w, http.StatusBadRequest, share.PublicMessage(err))
		return memory.Record{}, req, false
	}
	return rec, req, true
}
