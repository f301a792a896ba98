// Package suggest writes a message for a memory from its title, through
// an LLM provider, and never fails: any problem yields a fallback text.
package suggest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lazypower/memoria/internal/llm"
	"github.com/lazypower/memoria/internal/memory"
	"github.com/lazypower/memoria/internal/metrics"
)

// Fallback texts shown in place of a generated message.
const (
	FallbackEmpty = "Could not generate message. Please try again."
	FallbackError = "Error generating message. Please write your own beautiful words."
)

var (
	// ErrInFlight means a suggestion is already being generated for this
	// control; the control is disabled until it resolves.
	ErrInFlight = errors.New("a suggestion is already being generated")
	// ErrNoTitle means there is nothing to base a suggestion on.
	ErrNoTitle = errors.New("enter a title first so there is something to write about")
)

// Generator produces message suggestions.
type Generator struct {
	client  llm.Client
	timeout time.Duration
	log     zerolog.Logger
}

// NewGenerator wraps client. Every call is bounded by timeout so a slow
// provider resolves to the fallback instead of hanging.
func NewGenerator(client llm.Client, timeout time.Duration, log zerolog.Logger) *Generator {
	return &Generator{client: client, timeout: timeout, log: log}
}

// Generate returns a suggested message for title and theme. It returns a
// fallback text rather than an error.
func (g *Generator) Generate(ctx context.Context, title string, theme memory.Theme) string {
	if g.client == nil {
		metrics.Suggestions.WithLabelValues("fallback").Inc()
		return FallbackError
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Complete(ctx, llm.HeartfeltPrompt(title, string(theme)))
	if err != nil {
		g.log.Warn().Err(err).Str("theme", string(theme)).Msg("suggestion failed")
		metrics.Suggestions.WithLabelValues("fallback").Inc()
		return FallbackError
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		metrics.Suggestions.WithLabelValues("fallback").Inc()
		return FallbackEmpty
	}

	g.log.Debug().
		Str("provider", resp.Provider).
		Int("tokens", resp.TokensUsed).
		Msg("suggestion generated")
	metrics.Suggestions.WithLabelValues("generated").Inc()
	return strings.TrimSpace(resp.Content)
}

// Affordance is the "write it for me" control of one editing session. At
// most one suggestion is in flight; the control is disabled meanwhile. An
// in-flight call cannot be cancelled, it always resolves.
type Affordance struct {
	gen     *Generator
	mu      sync.Mutex
	pending bool
}

// NewAffordance returns an enabled control backed by gen.
func NewAffordance(gen *Generator) *Affordance {
	return &Affordance{gen: gen}
}

// Enabled reports whether the control can be triggered.
func (a *Affordance) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.pending
}

// Trigger generates a suggestion. It returns ErrInFlight if one is already
// pending and ErrNoTitle for an empty title.
func (a *Affordance) Trigger(ctx context.Context, title string, theme memory.Theme) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", ErrNoTitle
	}

	a.mu.Lock()
	if a.pending {
		a.mu.Unlock()
		metrics.Suggestions.WithLabelValues("busy").Inc()
		return "", ErrInFlight
	}
	a.pending = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.pending = false
		a.mu.Unlock()
	}()

	// Detached from the caller: the call resolves even if the caller goes
	// away, bounded by the generator timeout.
	return a.gen.Generate(context.WithoutCancel(ctx), title, theme), nil
}
