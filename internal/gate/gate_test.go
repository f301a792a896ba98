package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lazypower/memoria/internal/memory"
)

func private(password string) memory.Record {
	return memory.Record{
		Title:     "Secret",
		Message:   "for your eyes",
		Theme:     memory.ThemeElegant,
		CreatedAt: 1700000000000,
		IsPrivate: true,
		Password:  password,
	}
}

func TestAuthorize(t *testing.T) {
	rec := private("abc123")

	tests := []struct {
		candidate string
		want      bool
	}{
		{"abc123", true},
		{"ABC123", false},
		{"", false},
		{"abc1234", false},
		{"abc12", false},
		{" abc123", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Authorize(rec, tt.candidate), "candidate %q", tt.candidate)
	}
}

func TestAuthorizeUnicodePassword(t *testing.T) {
	rec := private("كلمة🔑")
	assert.True(t, Authorize(rec, "كلمة🔑"))
	assert.False(t, Authorize(rec, "كلمة"))
}

func TestAuthorizeEmptyStoredPassword(t *testing.T) {
	// Decoding does not re-check invariants, so this record can exist.
	assert.False(t, Authorize(private(""), ""))
}

func TestPublicRecordStartsUnlocked(t *testing.T) {
	rec := private("")
	rec.IsPrivate = false

	g := New(rec)
	assert.Equal(t, Unlocked, g.State())
	assert.Equal(t, NoAttempt, g.LastOutcome())

	got, ok := g.Content()
	assert.True(t, ok)
	assert.True(t, rec.Equal(got))
	assert.True(t, Authorize(rec, "anything"))
}

func TestPrivateRecordStartsLocked(t *testing.T) {
	g := New(private("abc123"))
	assert.Equal(t, Locked, g.State())
	assert.Equal(t, NoAttempt, g.LastOutcome())

	_, ok := g.Content()
	assert.False(t, ok)
}

func TestUnlimitedRetries(t *testing.T) {
	g := New(private("abc123"))

	for _, wrong := range []string{"a", "ABC123", ""} {
		assert.Equal(t, Denied, g.Attempt(wrong))
		assert.Equal(t, Locked, g.State())
		assert.Equal(t, Denied, g.LastOutcome())
	}

	assert.Equal(t, Granted, g.Attempt("abc123"))
	assert.Equal(t, Unlocked, g.State())
	_, ok := g.Content()
	assert.True(t, ok)
}

func TestUnlockedIsTerminal(t *testing.T) {
	g := New(private("abc123"))
	g.Attempt("abc123")

	assert.Equal(t, Granted, g.Attempt("wrong"))
	assert.Equal(t, Unlocked, g.State())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "locked", Locked.String())
	assert.Equal(t, "unlocked", Unlocked.String())
	assert.Equal(t, "none", NoAttempt.String())
	assert.Equal(t, "denied", Denied.String())
	assert.Equal(t, "granted", Granted.String())
}
