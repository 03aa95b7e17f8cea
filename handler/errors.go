package handler

import "errors"

// Package-level errors for common failure scenarios
var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrMissingPipeline indicates Wrap was called without WithSchema or WithPipeline
	ErrMissingPipeline = errors.New("handler: Wrap requires WithSchema or WithPipeline")
	// ErrDecodeRequest indicates the sanitized payload does not fit the request type
	ErrDecodeRequest = errors.New("failed to decode request payload")
	// ErrEncodeResponse indicates the handler result cannot be serialized
	ErrEncodeResponse = errors.New("failed to encode response")
)
