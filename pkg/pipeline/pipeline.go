package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/lumenpulse/apikit/core"
	"github.com/lumenpulse/apikit/pkg/logger"
	"github.com/lumenpulse/apikit/pkg/payload"
	"github.com/lumenpulse/apikit/pkg/sanitizer"
	"github.com/lumenpulse/apikit/pkg/statemachine"
	"github.com/lumenpulse/apikit/pkg/validator"
)

const instrumentationName = "github.com/lumenpulse/apikit/pkg/pipeline"

// Handler is the business step. It receives the validated, sanitized payload.
type Handler func(ctx context.Context, p payload.Value) (any, error)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSanitizer replaces the default deep sanitizer.
func WithSanitizer(s *sanitizer.Sanitizer) Option {
	return func(p *Pipeline) {
		if s != nil {
			p.sanitizer = s
		}
	}
}

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n *core.Normalizer) Option {
	return func(p *Pipeline) {
		if n != nil {
			p.normalizer = n
		}
	}
}

// WithLogger sets the logger for stage diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTracerProvider sets the provider for stage spans. Defaults to the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Pipeline) {
		if tp != nil {
			p.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// WithMeterProvider sets the provider for pipeline metrics. Defaults to the
// global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(p *Pipeline) {
		if mp != nil {
			p.meter = mp.Meter(instrumentationName)
		}
	}
}

// Pipeline runs a request through validation, sanitization, the business
// handler and, on any failure, error normalization. A Pipeline is immutable
// after New and safe for concurrent use; all per-call state lives in Request.
type Pipeline struct {
	schema     validator.Schema
	sanitizer  *sanitizer.Sanitizer
	normalizer *core.Normalizer
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter

	failures metric.Int64Counter
	duration metric.Float64Histogram
}

// New builds a pipeline for schema.
func New(schema validator.Schema, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		schema:     schema,
		sanitizer:  sanitizer.New(),
		normalizer: core.NewNormalizer(),
		logger:     logger.Noop(),
		tracer:     otel.GetTracerProvider().Tracer(instrumentationName),
		meter:      otel.GetMeterProvider().Meter(instrumentationName),
	}
	for _, opt := range opts {
		opt(p)
	}

	var err error
	p.failures, err = p.meter.Int64Counter(
		"apikit.pipeline.failures",
		metric.WithDescription("Requests that ended in an error response, by error kind"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetering, err)
	}
	p.duration, err = p.meter.Float64Histogram(
		"apikit.pipeline.duration",
		metric.WithDescription("Time spent in the pipeline per request"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetering, err)
	}
	return p, nil
}

// MustNew is like New but panics on error.
func MustNew(schema validator.Schema, opts ...Option) *Pipeline {
	p, err := New(schema, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Schema returns the schema requests are validated against.
func (p *Pipeline) Schema() validator.Schema { return p.schema }

// Run drives req through every stage and returns the outcome. Validation
// failures stop the run before sanitization; handler errors and panics are
// converted to error responses. Run never panics because of next.
func (p *Pipeline) Run(ctx context.Context, req *Request, next Handler) Outcome {
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "pipeline.run", trace.WithAttributes(attribute.String("pipeline.path", req.path)))
	defer span.End()

	if req.machine.Current() != StateReceived {
		resp := p.normalizer.Normalize(ctx, ErrRequestReused, req.path)
		return Outcome{Err: &resp, Trail: req.machine.History()}
	}

	m := req.machine

	p.fire(ctx, m, EventValidate)
	clean, err := p.validate(ctx, req.raw)
	if err != nil {
		var fault *core.Fault
		if errors.As(err, &fault) {
			p.fire(ctx, m, EventFail)
		} else {
			p.fire(ctx, m, EventReject)
		}
		return p.finishFailed(ctx, span, req, err, start)
	}
	p.fire(ctx, m, EventAccept)

	sanitized, err := p.sanitize(ctx, clean)
	if err != nil {
		p.fire(ctx, m, EventFail)
		return p.finishFailed(ctx, span, req, err, start)
	}
	p.fire(ctx, m, EventSanitized)

	p.fire(ctx, m, EventHandle)
	result, err := p.handle(ctx, next, sanitized)
	if err != nil {
		p.fire(ctx, m, EventFail)
		out := p.finishFailed(ctx, span, req, err, start)
		out.Payload = sanitized
		return out
	}
	p.fire(ctx, m, EventSucceed)
	p.fire(ctx, m, EventRespond)
	p.fire(ctx, m, EventSend)

	span.SetStatus(codes.Ok, "")
	p.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attribute.Bool("pipeline.failed", false)))

	return Outcome{
		Payload: sanitized,
		Result:  result,
		Trail:   m.History(),
	}
}

// Fail normalizes a failure that happened before the request could enter the
// pipeline, such as a malformed body, and marks req as sent.
func (p *Pipeline) Fail(ctx context.Context, req *Request, failure any) Outcome {
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "pipeline.run", trace.WithAttributes(attribute.String("pipeline.path", req.path)))
	defer span.End()

	if req.machine.Current() == StateReceived {
		p.fire(ctx, req.machine, EventFail)
	}
	return p.finishFailed(ctx, span, req, failure, start)
}

// validate recovers panics from custom rules the same way sanitize does.
func (p *Pipeline) validate(ctx context.Context, raw payload.Value) (clean payload.Value, err error) {
	_, span := p.tracer.Start(ctx, "pipeline.validate")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			clean = payload.Null()
			err = &core.Fault{
				Value: fmt.Errorf("%w: %v", ErrValidateFailed, r),
				Stack: debug.Stack(),
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "validation panicked")
		}
	}()

	clean, err = validator.Validate(raw, p.schema)
	if err != nil {
		span.SetStatus(codes.Error, "validation failed")
		if ve := validator.ExtractValidationError(err); ve != nil {
			span.SetAttributes(attribute.Int("validation.errors", len(ve.Messages())))
		}
	}
	return clean, err
}

// sanitize recovers panics from custom transforms and reports them as errors
// so they surface as unhandled failures.
func (p *Pipeline) sanitize(ctx context.Context, v payload.Value) (out payload.Value, err error) {
	_, span := p.tracer.Start(ctx, "pipeline.sanitize",
		trace.WithAttributes(attribute.String("sanitizer.mode", string(p.sanitizer.Mode()))))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = &core.Fault{
				Value: fmt.Errorf("%w: %v", ErrSanitizeFailed, r),
				Stack: debug.Stack(),
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "sanitization panicked")
		}
	}()

	return p.sanitizer.Value(v), nil
}

func (p *Pipeline) handle(ctx context.Context, next Handler, v payload.Value) (result any, err error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.handle")
	defer span.End()

	if next == nil {
		return nil, ErrNilHandler
	}

	defer func() {
		if r := recover(); r != nil {
			err = core.NewFault(r)
			span.SetStatus(codes.Error, "handler panicked")
		}
	}()

	result, err = next(ctx, v)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
	}
	return result, err
}

func (p *Pipeline) finishFailed(ctx context.Context, span trace.Span, req *Request, failure any, start time.Time) Outcome {
	m := req.machine
	p.fire(ctx, m, EventNormalize)

	nctx, nspan := p.tracer.Start(ctx, "pipeline.normalize")
	resp := p.normalizer.Normalize(nctx, failure, req.path)
	nspan.End()
	p.fire(ctx, m, EventSend)

	kind := attribute.String("error.kind", resp.Error)
	p.failures.Add(ctx, 1, metric.WithAttributes(kind))
	p.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attribute.Bool("pipeline.failed", true)))

	span.SetAttributes(kind, attribute.Int("http.response.status_code", resp.StatusCode))
	span.SetStatus(codes.Error, resp.Error)

	return Outcome{Err: &resp, Trail: m.History()}
}

// fire advances m. A rejected event means the lifecycle table and Run
// disagree; it is logged and the run continues.
func (p *Pipeline) fire(ctx context.Context, m *statemachine.Machine, e statemachine.Event) {
	if err := m.Fire(ctx, e); err != nil {
		p.logger.LogAttrs(ctx, slog.LevelError, "invalid lifecycle transition",
			logger.Component("pipeline"),
			logger.Stage(string(m.Current())),
			logger.Error(err),
		)
	}
}
