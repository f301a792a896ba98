// Package gate decides whether a decoded memory may be shown.
//
// The password travels in plain text inside the token, so anyone holding
// the link can read it. The gate is a courtesy lock for casual viewers,
// not access control.
package gate

import (
	"crypto/subtle"

	"github.com/lazypower/memoria/internal/memory"
)

// State is the lock state of a loaded memory.
type State int

const (
	Locked State = iota
	Unlocked
)

func (s State) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// Outcome is the result of the most recent unlock attempt.
type Outcome int

const (
	NoAttempt Outcome = iota
	Denied
	Granted
)

func (o Outcome) String() string {
	switch o {
	case Denied:
		return "denied"
	case Granted:
		return "granted"
	}
	return "none"
}

// Authorize reports whether candidate opens r. Public records always open.
// An empty candidate never opens a private record.
func Authorize(r memory.Record, candidate string) bool {
	if !r.IsPrivate {
		return true
	}
	if candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(r.Password)) == 1
}

// Gate tracks the lock state of one loaded memory for one viewer. Once
// unlocked it stays unlocked. It is not safe for concurrent use.
type Gate struct {
	record memory.Record
	state  State
	last   Outcome
}

// New returns a gate for r, unlocked when r is public.
func New(r memory.Record) *Gate {
	g := &Gate{record: r, state: Locked}
	if !r.IsPrivate {
		g.state = Unlocked
	}
	return g
}

// Attempt tries candidate against the record. Retries are unlimited.
func (g *Gate) Attempt(candidate string) Outcome {
	if g.state == Unlocked {
		g.last = Granted
		return Granted
	}
	if Authorize(g.record, candidate) {
		g.state = Unlocked
		g.last = Granted
	} else {
		g.last = Denied
	}
	return g.last
}

// State returns the current lock state.
func (g *Gate) State() State { return g.state }

// LastOutcome separates "no attempt yet" from "wrong password" so the
// caller can show an error hint only after a failed try.
func (g *Gate) LastOutcome() Outcome { return g.last }

// Content returns the record once the gate is unlocked.
func (g *Gate) Content() (memory.Record, bool) {
	if g.state != Unlocked {
		return memory.Record{}, false
	}
	return g.record, true
}
