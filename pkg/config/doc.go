// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 behind a
// small generic API:
//
//   - Load parses a struct with `env:` tags, loading the default .env file on
//     first use and caching each config type for the process lifetime.
//   - LoadEnv loads explicit .env files (later files win).
//   - MustLoad / MustLoadEnv panic on failure for configuration the process
//     cannot run without.
//
// Every notifykit package that needs settings declares its own Config struct
// and loads it through this package, so defaults and overrides live in one
// place per concern.
package config
