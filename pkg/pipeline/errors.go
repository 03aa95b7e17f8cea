package pipeline

import "errors"

var (
	ErrRequestReused   = errors.New("pipeline request already processed")
	ErrNilHandler      = errors.New("pipeline handler is nil")
	ErrValidateFailed  = errors.New("payload validation failed")
	ErrSanitizeFailed  = errors.New("payload sanitization failed")
	ErrInvalidMetering = errors.New("failed to create pipeline instruments")
)
