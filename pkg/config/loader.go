package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures Load.
type Option func(*options)

type options struct {
	prefix      string
	files       []string
	environment map[string]string
}

// WithPrefix requires every variable to carry prefix, e.g. "APIKIT_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithDotenv sets the dotenv files to read, in order. Missing files are
// skipped. Defaults to ".env"; call with no arguments to disable.
func WithDotenv(files ...string) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithEnvironment replaces the process environment with vars.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) { o.environment = maps.Clone(vars) }
}

// Load parses the environment into v.
//
// Example:
//
//	type DatabaseConfig struct {
//		Host string `env:"DB_HOST" envDefault:"localhost"`
//		Port int    `env:"DB_PORT" envDefault:"5432"`
//		User string `env:"DB_USER,required"`
//	}
//
//	var cfg DatabaseConfig
//	err := config.Load(&cfg)
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := options{files: []string{".env"}}
	for _, opt := range opts {
		opt(&o)
	}

	if err := loadDotenv(&o); err != nil {
		return err
	}

	if err := env.ParseWithOptions(v, env.Options{
		Prefix:      o.prefix,
		Environment: o.environment,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// loadDotenv applies the dotenv files without overriding variables that are
// already set, either in the process or in the replacement environment.
func loadDotenv(o *options) error {
	for _, file := range o.files {
		if o.environment == nil {
			if err := godotenv.Load(file); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return fmt.Errorf("%w: %s: %w", ErrLoadingDotenv, file, err)
			}
			continue
		}

		vars, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%w: %s: %w", ErrLoadingDotenv, file, err)
		}
		for k, val := range vars {
			if _, ok := o.environment[k]; !ok {
				o.environment[k] = val
			}
		}
	}
	return nil
}
