package core

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lumenpulse/apikit/pkg/logger"
	"github.com/lumenpulse/apikit/pkg/validator"
)

// GenericMessage is sent to clients for every failure whose detail must not
// leave the server.
const GenericMessage = "Internal Server Error"

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithLogger sets the logger used to report failures. Nil is ignored.
func WithLogger(l *slog.Logger) NormalizerOption {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithExposeErrors sends runtime fault messages to clients instead of
// GenericMessage. Enable it only outside production.
func WithExposeErrors(expose bool) NormalizerOption {
	return func(n *Normalizer) { n.exposeErrors = expose }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) NormalizerOption {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// Normalizer converts failures into ErrorResponse values. It holds no
// per-request state and is safe for concurrent use.
type Normalizer struct {
	logger       *slog.Logger
	exposeErrors bool
	now          func() time.Time
}

// NewNormalizer creates a Normalizer that logs nothing and hides runtime
// fault messages unless configured otherwise.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		logger: logger.Noop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// classification is the outcome of matching a failure against the kinds.
type classification struct {
	kind    ErrorKind
	status  int
	message Message
	cause   error
	stack   []byte
	raw     any
}

// Normalize classifies failure and builds the client response for path.
// It never panics.
func (n *Normalizer) Normalize(ctx context.Context, failure any, path string) (resp ErrorResponse) {
	timestamp := n.now().UTC().Format(TimestampLayout)

	defer func() {
		if r := recover(); r != nil {
			resp = ErrorResponse{
				StatusCode: http.StatusInternalServerError,
				Message:    Text(GenericMessage),
				Error:      KindUnknownError.String(),
				Timestamp:  timestamp,
				Path:       path,
			}
			n.logger.LogAttrs(ctx, slog.LevelError, "error normalization failed",
				logger.Component("normalizer"),
				logger.Raw(r),
				logger.Path(path),
			)
		}
	}()

	c := n.classify(failure)
	resp = ErrorResponse{
		StatusCode: c.status,
		Message:    c.message,
		Error:      c.kind.String(),
		Timestamp:  timestamp,
		Path:       path,
	}
	n.log(ctx, c, resp)
	return resp
}

func (n *Normalizer) classify(failure any) classification {
	err, ok := failure.(error)
	if !ok || err == nil {
		return unknown(failure, nil)
	}

	if ve := validator.ExtractValidationError(err); ve != nil {
		return classification{
			kind:    KindValidationFailed,
			status:  http.StatusBadRequest,
			message: List(ve.Messages()...),
			cause:   err,
		}
	}

	if he, ok := asHTTPError(err); ok {
		status := he.Code
		if status < 100 || status > 599 {
			status = http.StatusInternalServerError
		}
		return classification{
			kind:    KindHTTPError,
			status:  status,
			message: he.Body(),
			cause:   err,
		}
	}

	var fault *Fault
	if errors.As(err, &fault) {
		if !fault.IsError() {
			return unknown(fault.Value, fault.Stack)
		}
	}

	c := classification{
		kind:    KindUnhandledError,
		status:  http.StatusInternalServerError,
		message: Text(GenericMessage),
		cause:   err,
	}
	if fault != nil {
		c.stack = fault.Stack
	}
	if n.exposeErrors {
		if msg := err.Error(); msg != "" {
			c.message = Text(msg)
		}
	}
	return c
}

func asHTTPError(err error) (HTTPError, bool) {
	var he HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	var hp *HTTPError
	if errors.As(err, &hp) && hp != nil {
		return *hp, true
	}
	return HTTPError{}, false
}

func unknown(raw any, stack []byte) classification {
	return classification{
		kind:    KindUnknownError,
		status:  http.StatusInternalServerError,
		message: Text(GenericMessage),
		stack:   stack,
		raw:     raw,
	}
}

// log writes client errors at debug level and server errors at error level.
func (n *Normalizer) log(ctx context.Context, c classification, resp ErrorResponse) {
	level := slog.LevelError
	if resp.StatusCode < http.StatusInternalServerError {
		level = slog.LevelDebug
	}
	if !n.logger.Enabled(ctx, level) {
		return
	}

	attrs := []slog.Attr{
		logger.Component("normalizer"),
		logger.ErrorKind(resp.Error),
		logger.StatusCode(resp.StatusCode),
		logger.Path(resp.Path),
		logger.Error(c.cause),
		logger.Stack(c.stack),
		slog.Any("response", resp),
	}
	if c.kind == KindUnknownError {
		attrs = append(attrs, logger.Raw(c.raw))
	}
	n.logger.LogAttrs(ctx, level, "request failed", attrs...)
}
