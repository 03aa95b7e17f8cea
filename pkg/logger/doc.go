// Package logger builds *slog.Logger instances for apikit services.
//
// New takes functional options that pick the output format and level, attach
// static attributes and register ContextExtractor callbacks. Extractors run on
// every record, so request-scoped values such as the request id stored by the
// requestid middleware show up in every log line written with a request
// context.
//
// Attribute helpers in attr.go keep key names consistent between the pipeline,
// the error normalizer and the HTTP layer (error_kind, status_code, stage,
// path, stack).
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Development, "articles-api"),
//	    logger.WithConfig(cfg.Log),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.ErrorContext(ctx, "request failed", logger.ErrorKind("UnhandledError"), logger.StatusCode(500))
//
// Noop returns a logger that drops every record; components use it when no
// logger is configured.
package logger
