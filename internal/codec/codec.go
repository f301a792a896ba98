// Package codec turns a memory record into a URL-safe token and back.
//
// A token is the record's JSON, as UTF-8, packed with base64 over the
// URL-safe alphabet with explicit padding. Decoding is strict at every
// stage and never returns a partially populated record.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/lazypower/memoria/internal/memory"
)

// Encode serializes r into a token suitable for a URL fragment.
func Encode(r memory.Record) (string, error) {
	if err := checkSerializable(r); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return "", fail(SerializationFailure, "marshal record: %w", err)
	}
	// json.Encoder terminates every value with a newline.
	payload := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})

	return base64.URLEncoding.EncodeToString(payload), nil
}

// Decode reverses Encode. Tokens written with the standard base64 alphabet
// (as older links were) are accepted too.
func Decode(token string) (memory.Record, error) {
	raw, err := unpack(token)
	if err != nil {
		return memory.Record{}, err
	}
	if !utf8.Valid(raw) {
		return memory.Record{}, fail(TextDecodeFailure, "payload is not valid UTF-8")
	}
	if err := checkShape(raw); err != nil {
		return memory.Record{}, err
	}

	var r memory.Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return memory.Record{}, fail(StructureDecodeFailure, "unmarshal record: %w", err)
	}
	if !r.Theme.Valid() {
		return memory.Record{}, fail(StructureDecodeFailure, "unknown theme %q", r.Theme)
	}
	return r, nil
}

func unpack(token string) ([]byte, error) {
	if token == "" {
		return nil, fail(TransportDecodeFailure, "empty token")
	}
	// The base64 decoder skips CR and LF; a token never legitimately has them.
	if strings.ContainsAny(token, "\r\n") {
		return nil, fail(TransportDecodeFailure, "token contains line breaks")
	}

	enc := base64.URLEncoding
	if strings.ContainsAny(token, "+/") {
		enc = base64.StdEncoding
	}
	raw, err := enc.Strict().DecodeString(token)
	if err != nil {
		return nil, fail(TransportDecodeFailure, "unpack token: %w", err)
	}
	return raw, nil
}

// checkSerializable rejects records that JSON could only encode lossily.
// encoding/json replaces invalid UTF-8 with U+FFFD, which would break the
// round trip without an error.
func checkSerializable(r memory.Record) error {
	fields := []struct {
		name string
		val  *string
	}{
		{"title", &r.Title},
		{"message", &r.Message},
		{"image", r.Image},
		{"music", r.Music},
		{"password", &r.Password},
	}
	for _, f := range fields {
		if f.val != nil && !utf8.ValidString(*f.val) {
			return fail(SerializationFailure, "%s is not valid UTF-8", f.name)
		}
	}
	if !r.Theme.Valid() {
		return fail(SerializationFailure, "unknown theme %q", r.Theme)
	}
	return nil
}
