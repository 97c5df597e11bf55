// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the service settings.
type Config struct {
	Addr          string `env:"LIGHTS_ADDR" envDefault:":8080"`
	AllowedOrigin string `env:"LIGHTS_ALLOWED_ORIGIN" envDefault:"http://127.0.0.1:5173"`
	JWTSecret     string `env:"LIGHTS_JWT_SECRET"` // Empty disables authentication

	ValkeyAddr     string `env:"LIGHTS_VALKEY_ADDR"` // Empty keeps snapshots in memory
	ValkeyPassword string `env:"LIGHTS_VALKEY_PASSWORD"`
	ValkeyPrefix   string `env:"LIGHTS_VALKEY_PREFIX" envDefault:"scenyx:lights"`
}

// Load reads the optional dotenv files into the process environment and
// parses the result. Variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
