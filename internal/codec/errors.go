package codec

import (
	"errors"
	"fmt"
)

// Kind classifies a codec failure. The distinction is for diagnostics only;
// callers show the same message for every decode kind.
type Kind int

const (
	// SerializationFailure means a record could not be turned into text.
	SerializationFailure Kind = iota + 1
	// TransportDecodeFailure means the token is not valid base64 output.
	TransportDecodeFailure
	// TextDecodeFailure means the recovered bytes are not valid UTF-8.
	TextDecodeFailure
	// StructureDecodeFailure means the text is not a well-formed record.
	StructureDecodeFailure
)

func (k Kind) String() string {
	switch k {
	case SerializationFailure:
		return "serialization"
	case TransportDecodeFailure:
		return "transport"
	case TextDecodeFailure:
		return "text"
	case StructureDecodeFailure:
		return "structure"
	}
	return "unknown"
}

// ErrInvalid matches every decode failure via errors.Is.
var ErrInvalid = errors.New("memory token is invalid or corrupted")

// Error is returned by Encode and Decode.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("codec %s failure: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrInvalid) hold for all decode kinds.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid && e.Kind != SerializationFailure
}

// KindOf returns the failure kind carried by err, or 0 if err is not a codec
// error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

func fail(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}
