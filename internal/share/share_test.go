package share

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazypower/memoria/internal/codec"
	"github.com/lazypower/memoria/internal/gate"
	"github.com/lazypower/memoria/internal/memory"
)

func birthday() memory.Record {
	return memory.Record{
		Title:     "Happy Birthday",
		Message:   "I love you",
		Theme:     memory.ThemeRomantic,
		CreatedAt: 1700000000000,
	}
}

func TestEndToEndPublic(t *testing.T) {
	rec := birthday()

	link, err := BuildURL("https://memoria.example/app/", rec, Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://memoria.example/app/#"))

	got, err := LoadURL(link)
	require.NoError(t, err)
	assert.True(t, rec.Equal(got))

	g := gate.New(got)
	assert.Equal(t, gate.Unlocked, g.State())
	content, ok := g.Content()
	assert.True(t, ok)
	assert.Equal(t, "I love you", content.Message)
}

func TestEndToEndPrivate(t *testing.T) {
	rec := birthday()
	rec.IsPrivate = true
	rec.Password = "abc123"

	link, err := BuildURL("https://memoria.example/", rec, Options{})
	require.NoError(t, err)

	got, err := LoadURL(link)
	require.NoError(t, err)

	g := gate.New(got)
	assert.Equal(t, gate.Locked, g.State())
	assert.Equal(t, gate.Denied, g.Attempt("ABC123"))
	assert.Equal(t, gate.Granted, g.Attempt("abc123"))
}

func TestBuildURLReplacesFragment(t *testing.T) {
	link, err := BuildURL("https://memoria.example/?lang=ar#old", birthday(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(link, "#"))
	assert.True(t, strings.HasPrefix(link, "https://memoria.example/?lang=ar#"))
	assert.NotContains(t, link, "old")
}

func TestBuildURLTooLong(t *testing.T) {
	_, err := BuildURL("https://memoria.example/", birthday(), Options{MaxTokenLength: 16})
	assert.ErrorIs(t, err, ErrTokenTooLong)
	assert.Contains(t, PublicMessage(err), "too large")
}

func TestLoadFragmentForms(t *testing.T) {
	token, err := codec.Encode(birthday())
	require.NoError(t, err)

	for _, in := range []string{token, "#" + token, strings.ReplaceAll(token, "=", "%3D")} {
		got, err := Load(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, "Happy Birthday", got.Title)
	}
}

func TestLoadEmpty(t *testing.T) {
	for _, in := range []string{"", "#"} {
		_, err := Load(in)
		assert.ErrorIs(t, err, ErrNoMemory)
	}
	_, err := LoadURL("https://memoria.example/")
	assert.ErrorIs(t, err, ErrNoMemory)
}

func TestLoadCorrupted(t *testing.T) {
	token, err := codec.Encode(birthday())
	require.NoError(t, err)

	inputs := []string{"not-valid-base64!!", token + "corrupt-suffix", "%zz"}
	for _, in := range inputs {
		got, err := Load(in)
		require.Error(t, err, "input %q", in)
		assert.True(t, errors.Is(err, codec.ErrInvalid), "input %q: %v", in, err)
		assert.Equal(t, InvalidLinkMessage, PublicMessage(err))
		assert.Equal(t, memory.Record{}, got)
	}
}

func TestPublicMessageHidesKinds(t *testing.T) {
	kinds := []codec.Kind{codec.TransportDecodeFailure, codec.TextDecodeFailure, codec.StructureDecodeFailure}
	for _, k := range kinds {
		err := &codec.Error{Kind: k, Err: errors.New("detail that must not leak")}
		assert.Equal(t, InvalidLinkMessage, PublicMessage(err))
	}
	assert.Equal(t, "", PublicMessage(nil))
}
