// Package core turns any failure raised while serving a request into the
// single client-facing ErrorResponse shape:
//
//	{"statusCode": 400, "message": ["email: must be an email"], "error": "ValidationError",
//	 "timestamp": "2024-05-01T10:00:00.000Z", "path": "/auth/register"}
//
// Failures are classified by a fixed priority. Validation failures produced
// by pkg/validator come first, then declared HTTPError values, then runtime
// faults (any other error, including recovered panics wrapped in Fault), and
// finally anything that is not an error at all. Only the first two kinds ever
// reach the client verbatim; runtime detail such as messages and stack traces
// goes to the log.
//
// Normalizer never fails: if classification itself panics the response
// degrades to a 500 UnknownError.
package core
