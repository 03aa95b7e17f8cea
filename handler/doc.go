// Package handler adapts typed business functions to net/http.
//
// Wrap binds the raw request payload, runs it through a pipeline.Pipeline
// (schema validation, then sanitization), decodes the sanitized payload into
// the request type R and calls the handler. The handler never sees raw client
// input. Every failure, whether a malformed body, a validation failure, a
// declared core.HTTPError or a panic, is rendered as a core.ErrorResponse:
//
//	{"statusCode":400,"message":["email: must be an email"],"error":"ValidationError",
//	 "timestamp":"2026-01-02T15:04:05.000Z","path":"/auth/register"}
//
// Successful handlers return a Response; JSON wraps data in the
// {"data": ..., "meta": ...} envelope and Empty writes a bare status.
//
// # Usage
//
//	type Register struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	register := func(ctx handler.Context, req Register) (handler.Response, error) {
//		if exists(req.Email) {
//			return nil, core.NewHTTPError(http.StatusConflict, "email already registered")
//		}
//		return handler.JSON(req, handler.WithJSONStatus(http.StatusCreated)), nil
//	}
//
//	r.Post("/auth/register", handler.Wrap(register,
//		handler.WithSchema[handler.Context, Register](registerSchema,
//			pipeline.WithNormalizer(normalizer),
//		),
//	))
//
// # Binding
//
// The default binder reads JSON bodies for POST, PUT and PATCH and the query
// string for other methods. Binder failures are mapped by BindError:
// 413 for oversized bodies, 415 for a wrong Content-Type and 400 for
// malformed JSON or forms.
//
// # Router fallbacks
//
// NotFound and MethodNotAllowed render the same ErrorResponse shape for
// requests that never reach a handler.
package handler
