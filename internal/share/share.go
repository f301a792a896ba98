// Package share places codec tokens in URL fragments and reads them back.
// The fragment is the only storage a memory has.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/lazypower/memoria/internal/codec"
	"github.com/lazypower/memoria/internal/memory"
)

// InvalidLinkMessage is the only text a viewer sees for a broken link.
const InvalidLinkMessage = "this link is invalid or corrupted"

var (
	// ErrNoMemory means the URL has no fragment; show the creation view.
	ErrNoMemory = errors.New("no memory in link")
	// ErrTokenTooLong means the token exceeds the configured link budget.
	ErrTokenTooLong = errors.New("memory is too large to share as a link")
)

// Options tunes the link boundary.
type Options struct {
	// MaxTokenLength rejects longer tokens. Zero means no limit.
	MaxTokenLength int
}

// BuildURL encodes r and places the token in the fragment of base,
// replacing any fragment already there.
func BuildURL(base string, r memory.Record, opts Options) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	token, err := codec.Encode(r)
	if err != nil {
		return "", err
	}
	if opts.MaxTokenLength > 0 && len(token) > opts.MaxTokenLength {
		return "", fmt.Errorf("%w (%d > %d chars)", ErrTokenTooLong, len(token), opts.MaxTokenLength)
	}

	u.Fragment = ""
	u.RawFragment = ""
	// The token alphabet needs no escaping in a fragment.
	return u.String() + "#" + token, nil
}

// Load decodes a URL fragment, with or without its leading '#'.
func Load(fragment string) (memory.Record, error) {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" {
		return memory.Record{}, ErrNoMemory
	}
	if strings.Contains(fragment, "%") {
		unescaped, err := url.PathUnescape(fragment)
		if err != nil {
			return memory.Record{}, &codec.Error{Kind: codec.TransportDecodeFailure, Err: err}
		}
		fragment = unescaped
	}
	return codec.Decode(fragment)
}

// LoadURL extracts the fragment of a full share URL and loads it. A bare
// token is accepted as well.
func LoadURL(raw string) (memory.Record, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		return Load(raw[i+1:])
	}
	if strings.Contains(raw, "://") {
		return memory.Record{}, ErrNoMemory
	}
	return Load(raw)
}

// PublicMessage maps a load failure to viewer-facing text. Codec details
// stay out of it.
func PublicMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoMemory):
		return "this link does not contain a memory"
	case errors.Is(err, ErrTokenTooLong):
		return "the memory is too large to share as a link; use shorter text or smaller media"
	default:
		return InvalidLinkMessage
	}
}
