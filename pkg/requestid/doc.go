// Package requestid attaches a correlation identifier to every HTTP request.
//
// Middleware reuses a well-formed X-Request-ID header sent by the client and
// otherwise generates a UUID. The id is stored in the request context, echoed
// in the response header, recorded on the active trace span and exposed to
// the logger through LoggerExtractor, so error logs written by the normalizer
// can be matched to the response a client received.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// Invalid or empty ids supplied by a client are silently replaced.
package requestid
