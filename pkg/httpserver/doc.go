// Package httpserver runs an http.Server with graceful shutdown.
//
// Run listens on the configured address and blocks until ctx is canceled,
// SIGINT/SIGTERM is received or the server fails. Serve does the same on a
// caller-provided listener. Shutdown waits up to the shutdown timeout for
// in-flight requests.
//
// Health returns a liveness/readiness handler. Failed readiness checks are
// rendered as a 503 core.ErrorResponse so probes and clients see the same
// error shape as every other endpoint.
//
// # Usage
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
