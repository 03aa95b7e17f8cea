// Package pipeline sequences the request stages of an apikit endpoint:
//
//	received → validating ─┬─ validation_failed → normalizing ─┐
//	                       └─ sanitizing → sanitized → handling ┼─ failed → normalizing ─┤
//	                                                            └─ succeeded → responding ┴→ sent
//
// A Pipeline is built once per endpoint from a validator.Schema and is
// immutable afterwards. Every invocation gets its own Request, which owns the
// lifecycle Machine, so concurrent requests share nothing mutable.
//
// Validation failures end the run before sanitization and the business
// handler. Panics raised by custom sanitizer transforms or by the handler are
// recovered at the pipeline boundary and normalized like any other failure,
// so callers always receive either a result or a core.ErrorResponse.
//
// Each stage runs in an OpenTelemetry span and every failed run increments
// the apikit.pipeline.failures counter labelled with the error kind.
//
// # Usage
//
//	p := pipeline.MustNew(schema, pipeline.WithNormalizer(normalizer))
//
//	out := p.Run(ctx, pipeline.NewRequest(r.URL.Path, body), func(ctx context.Context, v payload.Value) (any, error) {
//	    return store.Create(ctx, v)
//	})
//	if out.Failed() {
//	    _ = out.Err.Render(w, r)
//	}
package pipeline
