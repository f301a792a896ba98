package memory

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/h2non/filetype"
)

const fallbackMIME = "application/octet-stream"

// DataURI is an embedded media blob in `data:<mime>;base64,<payload>` form.
type DataURI struct {
	MIME string
	Data []byte
}

// String renders d as a data URI.
func (d DataURI) String() string {
	return EncodeDataURI(d.MIME, d.Data)
}

// EncodeDataURI builds a base64 data URI. An empty mime becomes
// application/octet-stream.
func EncodeDataURI(mime string, data []byte) string {
	if mime == "" {
		mime = fallbackMIME
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// MediaFromBytes sniffs the MIME type of data and returns it as a data URI.
func MediaFromBytes(data []byte) (DataURI, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return DataURI{}, fmt.Errorf("sniff media type: %w", err)
	}
	mime := kind.MIME.Value
	if kind == filetype.Unknown || mime == "" {
		mime = fallbackMIME
	}
	return DataURI{MIME: mime, Data: data}, nil
}

// ParseDataURI splits a base64 data URI into its MIME type and payload.
// Only the base64 form is accepted; that is the only form the editor emits.
func ParseDataURI(s string) (DataURI, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return DataURI{}, fmt.Errorf("%w: not a data URI", ErrInvalidMedia)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return DataURI{}, fmt.Errorf("%w: missing payload separator", ErrInvalidMedia)
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return DataURI{}, fmt.Errorf("%w: payload is not base64", ErrInvalidMedia)
	}
	// Parameters such as charset may sit between the type and ;base64.
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if mime == "" {
		mime = "text/plain"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataURI{}, fmt.Errorf("%w: %v", ErrInvalidMedia, err)
	}
	return DataURI{MIME: mime, Data: data}, nil
}

// ValidMediaRef accepts either a base64 data URI or an absolute http(s)
// URL, the two forms music can take.
func ValidMediaRef(s string) error {
	if strings.HasPrefix(s, "data:") {
		_, err := ParseDataURI(s)
		return err
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMedia, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: want a data URI or http(s) URL", ErrInvalidMedia)
	}
	return nil
}
