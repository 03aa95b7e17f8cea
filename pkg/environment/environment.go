// Package environment names deployment environments and carries the active one
// through request contexts.
package environment

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// Environment is a deployment environment name.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
	Test        Environment = "test"
)

// Parse normalizes common aliases ("prod", "stage", "dev") to their canonical
// name. Unknown values are returned lower-cased so custom environments keep
// working.
func Parse(s string) Environment {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "prod", "production":
		return Production
	case "stage", "staging":
		return Staging
	case "dev", "development", "":
		return Development
	case "test", "testing":
		return Test
	default:
		return Environment(v)
	}
}

func (e Environment) IsProduction() bool { return e == Production }

// ExposeErrors reports whether internal error messages may be sent to
// clients. Only development and test environments expose them.
func (e Environment) ExposeErrors() bool {
	return e == Development || e == Test
}

// UnmarshalText lets Environment be used directly in env-tagged config structs.
func (e *Environment) UnmarshalText(text []byte) error {
	*e = Parse(string(text))
	return nil
}

type contextKey struct{}

func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns the environment stored in ctx, or "" when none is set.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// Middleware attaches env to every request context.
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), env)))
		})
	}
}

// LoggerExtractor returns a logger context extractor adding the "env" attribute.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if env := FromContext(ctx); env != "" {
			return slog.String("env", string(env)), true
		}
		return slog.Attr{}, false
	}
}
