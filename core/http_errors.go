package core

import (
	"net/http"
	"slices"
	"strings"
)

// HTTPError is a failure the application raises on purpose. Its status code
// and message are sent to the client unchanged. When Messages is non-nil the
// client receives the list instead of Message.
type HTTPError struct {
	Code     int
	Message  string
	Messages []string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.Messages != nil {
		return strings.Join(e.Messages, "; ")
	}
	return e.Message
}

// Is matches another HTTPError with the same code and message, so predefined
// values work with errors.Is.
func (e HTTPError) Is(target error) bool {
	t, ok := target.(HTTPError)
	return ok && t.Code == e.Code && t.Message == e.Message && slices.Equal(t.Messages, e.Messages)
}

// Body returns the client-facing message.
func (e HTTPError) Body() Message {
	if e.Messages != nil {
		return List(e.Messages...)
	}
	if e.Message == "" {
		return Text(http.StatusText(e.Code))
	}
	return Text(e.Message)
}

// WithMessage returns a copy of e carrying msg.
func (e HTTPError) WithMessage(msg string) HTTPError {
	return HTTPError{Code: e.Code, Message: msg}
}

// NewHTTPError creates a declared error with a single message.
//
// Example:
//
//	return nil, core.NewHTTPError(http.StatusConflict, "email already registered")
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

// NewHTTPErrors creates a declared error whose message is a list.
func NewHTTPErrors(code int, messages ...string) HTTPError {
	if messages == nil {
		messages = []string{}
	}
	return HTTPError{Code: code, Message: http.StatusText(code), Messages: slices.Clone(messages)}
}

func statusError(code int) HTTPError {
	return HTTPError{Code: code, Message: http.StatusText(code)}
}

// 4xx Client Errors
var (
	ErrBadRequest           = statusError(http.StatusBadRequest)
	ErrUnauthorized         = statusError(http.StatusUnauthorized)
	ErrForbidden            = statusError(http.StatusForbidden)
	ErrNotFound             = statusError(http.StatusNotFound)
	ErrMethodNotAllowed     = statusError(http.StatusMethodNotAllowed)
	ErrNotAcceptable        = statusError(http.StatusNotAcceptable)
	ErrRequestTimeout       = statusError(http.StatusRequestTimeout)
	ErrConflict             = statusError(http.StatusConflict)
	ErrGone                 = statusError(http.StatusGone)
	ErrRequestTooLarge      = statusError(http.StatusRequestEntityTooLarge)
	ErrUnsupportedMediaType = statusError(http.StatusUnsupportedMediaType)
	ErrUnprocessableEntity  = statusError(http.StatusUnprocessableEntity)
	ErrTooManyRequests      = statusError(http.StatusTooManyRequests)
)

// 5xx Server Errors
var (
	ErrInternalServerError = statusError(http.StatusInternalServerError)
	ErrNotImplemented      = statusError(http.StatusNotImplemented)
	ErrBadGateway          = statusError(http.StatusBadGateway)
	ErrServiceUnavailable  = statusError(http.StatusServiceUnavailable)
	ErrGatewayTimeout      = statusError(http.StatusGatewayTimeout)
)
