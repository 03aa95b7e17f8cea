// Package config loads configuration structs from the environment.
//
// Fields are described with caarlos0/env struct tags. Before parsing, Load
// reads .env files with godotenv; variables already present in the
// environment always win over values from files.
//
// # Usage
//
//	type Config struct {
//		Env       environment.Environment `env:"APP_ENV" envDefault:"development"`
//		SchemaDir string                  `env:"SCHEMA_DIR"`
//		HTTP      httpserver.Config
//		Log       logger.Config
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithDotenv(".env", ".env.local")); err != nil {
//		return err
//	}
//
// Tests can isolate themselves from the process environment with
// WithEnvironment, which makes Load read only the given map (plus any dotenv
// files).
package config
