package memory

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Theme selects the presentation of a memory page.
type Theme string

const (
	ThemeRomantic Theme = "romantic"
	ThemeFriendly Theme = "friendly"
	ThemeElegant  Theme = "elegant"
	ThemeModern   Theme = "modern"
)

// Themes lists every known theme in display order.
var Themes = []Theme{ThemeRomantic, ThemeFriendly, ThemeElegant, ThemeModern}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	switch t {
	case ThemeRomantic, ThemeFriendly, ThemeElegant, ThemeModern:
		return true
	}
	return false
}

// ParseTheme converts s to a Theme. An empty string yields the default
// romantic theme.
func ParseTheme(s string) (Theme, error) {
	if s == "" {
		return ThemeRomantic, nil
	}
	t := Theme(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
	return t, nil
}

var (
	ErrMissingContent  = errors.New("title and message are required")
	ErrMissingPassword = errors.New("a private memory needs a password")
	ErrUnknownTheme    = errors.New("unknown theme")
	ErrInvalidMedia    = errors.New("invalid media reference")
)

// Record is a single shareable memory. It is the whole payload carried by a
// share link. Field names on the wire match the links already in circulation.
type Record struct {
	Title         string  `json:"title"`
	Message       string  `json:"message"`
	Image         *string `json:"image"`
	Music         *string `json:"music"`
	Theme         Theme   `json:"theme"`
	CreatedAt     int64   `json:"createdAt"`
	IsPrivate     bool    `json:"isPrivate"`
	Password      string  `json:"password,omitempty"`
	AutoPlayMusic bool    `json:"autoPlayMusic"`
}

// Created returns CreatedAt as a time.Time.
func (r Record) Created() time.Time {
	return time.UnixMilli(r.CreatedAt)
}

// Equal reports whether r and o carry the same values, comparing media by
// content rather than by pointer.
func (r Record) Equal(o Record) bool {
	return r.Title == o.Title &&
		r.Message == o.Message &&
		equalRef(r.Image, o.Image) &&
		equalRef(r.Music, o.Music) &&
		r.Theme == o.Theme &&
		r.CreatedAt == o.CreatedAt &&
		r.IsPrivate == o.IsPrivate &&
		r.Password == o.Password &&
		r.AutoPlayMusic == o.AutoPlayMusic
}

func equalRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Draft is what the editor hands over when the user saves: a record
// without its creation timestamp.
type Draft struct {
	Title         string `json:"title"`
	Message       string `json:"message"`
	Image         string `json:"image,omitempty"`
	Music         string `json:"music,omitempty"`
	Theme         string `json:"theme"`
	IsPrivate     bool   `json:"isPrivate"`
	Password      string `json:"password,omitempty"`
	AutoPlayMusic bool   `json:"autoPlayMusic"`
}

// NewRecord validates d and stamps it with now. This is the only place the
// record invariants are enforced; decoding never re-checks them.
func NewRecord(d Draft, now time.Time) (Record, error) {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Message) == "" {
		return Record{}, ErrMissingContent
	}
	if d.IsPrivate && d.Password == "" {
		return Record{}, ErrMissingPassword
	}
	theme, err := ParseTheme(d.Theme)
	if err != nil {
		return Record{}, err
	}

	r := Record{
		Title:         d.Title,
		Message:       d.Message,
		Theme:         theme,
		CreatedAt:     now.UnixMilli(),
		IsPrivate:     d.IsPrivate,
		AutoPlayMusic: d.AutoPlayMusic,
	}
	if d.IsPrivate {
		r.Password = d.Password
	}

	if d.Image != "" {
		if _, err := ParseDataURI(d.Image); err != nil {
			return Record{}, fmt.Errorf("image: %w", err)
		}
		img := d.Image
		r.Image = &img
	}
	if d.Music != "" {
		if err := ValidMediaRef(d.Music); err != nil {
			return Record{}, fmt.Errorf("music: %w", err)
		}
		music := d.Music
		r.Music = &music
	}
	return r, nil
}
