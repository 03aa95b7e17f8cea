// Command server is a demo API built on apikit: every endpoint validates and
// sanitizes its input against a YAML schema and reports failures in a single
// error shape.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/lumenpulse/apikit/pkg/config"
	"github.com/lumenpulse/apikit/pkg/httpserver"
	"github.com/lumenpulse/apikit/pkg/logger"
	"github.com/lumenpulse/apikit/pkg/requestid"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithConfig(cfg.Log),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, a.routes())
}
