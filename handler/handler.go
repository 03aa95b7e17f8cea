package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lumenpulse/apikit/core"
	"github.com/lumenpulse/apikit/pkg/binder"
	"github.com/lumenpulse/apikit/pkg/logger"
	"github.com/lumenpulse/apikit/pkg/payload"
	"github.com/lumenpulse/apikit/pkg/pipeline"
	"github.com/lumenpulse/apikit/pkg/validator"
)

// HandlerFunc provides type-safe HTTP request handling with custom context support.
// C must implement the Context interface. R is decoded from the validated and
// sanitized payload, so it never sees raw client input.
//
// Example:
//
//	handler := handler.HandlerFunc[handler.Context, CreateUserRequest](
//		func(ctx handler.Context, req CreateUserRequest) (handler.Response, error) {
//			user, err := users.Create(ctx, req)
//			if err != nil {
//				return nil, err
//			}
//			return handler.JSON(user, handler.WithJSONStatus(http.StatusCreated)), nil
//		},
//	)
type HandlerFunc[C Context, R any] func(ctx C, req R) (Response, error)

// Decorator wraps a HandlerFunc to add cross-cutting functionality.
// Decorators are applied in order, with the first decorator in the list
// being the outermost wrapper.
type Decorator[C Context, R any] func(HandlerFunc[C, R]) HandlerFunc[C, R]

// WrapOption configures the Wrap function.
type WrapOption[C Context, R any] func(*wrapConfig[C, R])

// wrapConfig holds configuration for Wrap.
type wrapConfig[C Context, R any] struct {
	binder         binder.Bind
	pipeline       *pipeline.Pipeline
	schema         *validator.Schema
	pipelineOpts   []pipeline.Option
	contextFactory func(http.ResponseWriter, *http.Request) C
	decorators     []Decorator[C, R]
	logger         *slog.Logger
}

// WithSchema builds a dedicated pipeline for schema. opts are passed to pipeline.New.
func WithSchema[C Context, R any](schema validator.Schema, opts ...pipeline.Option) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.schema = &schema
		c.pipelineOpts = opts
	}
}

// WithPipeline uses an existing pipeline. It takes precedence over WithSchema.
func WithPipeline[C Context, R any](p *pipeline.Pipeline) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if p != nil {
			c.pipeline = p
		}
	}
}

// WithBinder sets the request binder. By default JSON bodies are bound for
// POST, PUT and PATCH, and the query string for every other method.
func WithBinder[C Context, R any](b binder.Bind) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if b != nil {
			c.binder = b
		}
	}
}

// WithBinders sets several binders whose results are merged in order.
//
// Example:
//
//	r.Put("/articles/{id}", handler.Wrap(update,
//		handler.WithSchema[handler.Context, UpdateArticle](schema),
//		handler.WithBinders[handler.Context, UpdateArticle](
//			binder.Path(chi.URLParam, "id"),
//			binder.JSON(),
//		),
//	))
func WithBinders[C Context, R any](binders ...binder.Bind) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.binder = binder.Chain(binders...)
	}
}

// WithContextFactory sets a custom context factory.
func WithContextFactory[C Context, R any](f func(http.ResponseWriter, *http.Request) C) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if f != nil {
			c.contextFactory = f
		}
	}
}

// WithDecorators adds decorators to wrap the handler.
// Decorators are applied in order, with the first decorator being the outermost.
func WithDecorators[C Context, R any](decorators ...Decorator[C, R]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.decorators = append(c.decorators, decorators...)
	}
}

// WithLogger sets the logger used for render failures.
func WithLogger[C Context, R any](l *slog.Logger) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if l != nil {
			c.logger = l
		}
	}
}

// DefaultBinder binds JSON bodies for POST, PUT and PATCH and the query
// string otherwise.
func DefaultBinder() binder.Bind {
	body := binder.JSON()
	query := binder.Query()
	return func(r *http.Request) (payload.Value, error) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			return body(r)
		default:
			return query(r)
		}
	}
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc. Every request is
// bound, validated, sanitized and only then decoded into R and passed to h.
// Any failure along the way is rendered as a core.ErrorResponse.
//
// Usage:
//
//	r.Post("/articles", handler.Wrap(createArticle,
//		handler.WithSchema[handler.Context, CreateArticle](articleSchema),
//	))
//
// Wrap panics with ErrMissingPipeline when neither WithSchema nor
// WithPipeline is given.
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	cfg := &wrapConfig[C, R]{
		binder: DefaultBinder(),
		logger: logger.Noop(),
		contextFactory: func(w http.ResponseWriter, r *http.Request) C {
			ctx := NewContext(w, r)
			if c, ok := any(ctx).(C); ok {
				return c
			}
			panic("cannot use default context factory with custom context type - provide WithContextFactory")
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	p := cfg.pipeline
	if p == nil {
		if cfg.schema == nil {
			panic(ErrMissingPipeline)
		}
		p = pipeline.MustNew(*cfg.schema, cfg.pipelineOpts...)
	}

	// Apply decorators in reverse order so first decorator is outermost
	finalHandler := h
	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		finalHandler = cfg.decorators[i](finalHandler)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := cfg.binder(r)
		req := pipeline.NewRequest(r.URL.Path, raw)
		if err != nil {
			out := p.Fail(r.Context(), req, BindError(err))
			cfg.render(w, r, out.Err)
			return
		}

		out := p.Run(r.Context(), req, func(ctx context.Context, v payload.Value) (any, error) {
			var dto R
			if err := payload.Decode(v, &dto); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrDecodeRequest, err)
			}
			if finalHandler == nil {
				return nil, pipeline.ErrNilHandler
			}
			resp, err := finalHandler(cfg.contextFactory(w, r.WithContext(ctx)), dto)
			if err != nil {
				return nil, err
			}
			if resp == nil {
				return nil, ErrNilResponse
			}
			if enc, ok := resp.(encoder); ok {
				return enc.encode()
			}
			return resp, nil
		})
		if out.Failed() {
			cfg.render(w, r, out.Err)
			return
		}
		cfg.render(w, r, out.Result.(Response))
	}
}

func (c *wrapConfig[C, R]) render(w http.ResponseWriter, r *http.Request, resp Response) {
	if err := resp.Render(w, r); err != nil {
		c.logger.LogAttrs(r.Context(), slog.LevelError, "failed to render response",
			logger.Component("handler"),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Error(err),
		)
	}
}

// BindError maps binder failures to declared HTTP errors so they reach the
// client with a 4xx status. The binder error stays in the chain for logs.
// Unrecognized errors are returned unchanged.
func BindError(err error) error {
	var declared core.HTTPError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, binder.ErrRequestTooLarge):
		declared = core.ErrRequestTooLarge.WithMessage("request body too large")
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		declared = core.ErrUnsupportedMediaType.WithMessage("Content-Type must be application/json")
	case errors.Is(err, binder.ErrFailedToParseJSON):
		declared = core.ErrBadRequest.WithMessage("malformed JSON request body")
	case errors.Is(err, binder.ErrFailedToParseForm):
		declared = core.ErrBadRequest.WithMessage("malformed form data")
	default:
		return err
	}
	return fmt.Errorf("%w: %w", declared, err)
}
