package payload

import "errors"

var (
	// ErrMalformedJSON is returned when a document is not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON payload")

	// ErrUnsupportedType is returned when a Go value has no payload representation.
	ErrUnsupportedType = errors.New("unsupported payload type")

	// ErrDecode is returned when a value cannot be decoded into the target type.
	ErrDecode = errors.New("failed to decode payload")

	// ErrNilTarget is returned when Decode is given a nil destination.
	ErrNilTarget = errors.New("nil decode target")
)
