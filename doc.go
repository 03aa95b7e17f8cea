// Package apikit is a request pipeline for JSON APIs: every payload is
// validated against a schema, sanitized, handed to typed business code and,
// when anything fails, normalized into one error shape.
//
// The module is organized as:
//
//   - pkg/payload: the untrusted payload model (ordered JSON values)
//   - pkg/validator: schemas, coercion, whitelisting and nested error trees
//   - pkg/sanitizer: string transforms applied to every string leaf
//   - core: error kinds, declared HTTP errors and the normalizer
//   - pkg/pipeline: the per-request lifecycle tying the stages together
//   - handler: net/http adapter with typed handlers
//
// Basic Usage:
//
//	schema, _ := validator.ParseSchema(registerYAML)
//
//	type Register struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	r := chi.NewRouter()
//	r.Post("/auth/register", handler.Wrap(
//		func(ctx handler.Context, req Register) (handler.Response, error) {
//			// req is validated and sanitized
//			return handler.JSON(createUser(ctx, req)), nil
//		},
//		handler.WithSchema[handler.Context, Register](schema),
//	))
//
// A failed request always produces:
//
//	{
//	  "statusCode": 400,
//	  "message": ["email: must be an email"],
//	  "error": "ValidationError",
//	  "timestamp": "2026-01-02T15:04:05.000Z",
//	  "path": "/auth/register"
//	}
package apikit
