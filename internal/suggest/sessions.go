package suggest

import (
	"context"
	"strings"
	"sync"

	"github.com/lazypower/memoria/internal/memory"
	"github.com/lazypower/memoria/internal/metrics"
)

// Sessions applies the one-call-in-flight rule per editing session id, for
// callers that serve many editors at once. Only sessions with a pending
// call are tracked.
type Sessions struct {
	gen *Generator

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewSessions returns an empty registry backed by gen.
func NewSessions(gen *Generator) *Sessions {
	return &Sessions{gen: gen, pending: make(map[string]struct{})}
}

// Trigger behaves like Affordance.Trigger for the control of session.
func (s *Sessions) Trigger(ctx context.Context, session, title string, theme memory.Theme) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", ErrNoTitle
	}

	s.mu.Lock()
	if _, busy := s.pending[session]; busy {
		s.mu.Unlock()
		metrics.Suggestions.WithLabelValues("busy").Inc()
		return "", ErrInFlight
	}
	s.pending[session] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, session)
		s.mu.Unlock()
	}()

	return s.gen.Generate(context.WithoutCancel(ctx), title, theme), nil
}

// InFlight returns the number of sessions with a pending call.
func (s *Sessions) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
