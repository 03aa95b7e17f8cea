package main

import (
	"github.com/lumenpulse/apikit/pkg/environment"
	"github.com/lumenpulse/apikit/pkg/httpserver"
	"github.com/lumenpulse/apikit/pkg/logger"
)

// Config is the service configuration, loaded from the environment and .env.
type Config struct {
	Env           environment.Environment `env:"APP_ENV" envDefault:"production"`
	Service       string                  `env:"SERVICE_NAME" envDefault:"apikit"`
	MaxBodyBytes  int64                   `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	SanitizerMode string                  `env:"SANITIZER_MODE" envDefault:"deep"`
	// ExposeErrors overrides the environment default for sending internal
	// error messages to clients.
	ExposeErrors *bool `env:"EXPOSE_ERRORS"`

	HTTP httpserver.Config
	Log  logger.Config
}

func (c Config) exposeErrors() bool {
	if c.ExposeErrors != nil {
		return *c.ExposeErrors
	}
	return c.Env.ExposeErrors()
}
