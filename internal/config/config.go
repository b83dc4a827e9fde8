// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every server setting, parsed from environment variables.
// Empty DatabaseURL selects the in-memory store (dev mode); empty RedisAddr
// disables the snapshot cache and move-history queue.
type Config struct {
	Addr     string `env:"ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`
	MoveQueue   string `env:"MOVE_QUEUE" envDefault:"deal_moves"`

	SnapshotTTL time.Duration `env:"SNAPSHOT_TTL" envDefault:"30s"`
	TokenExpire time.Duration `env:"TOKEN_EXPIRE" envDefault:"72h"`

	// Optional ed25519 key files; generated at startup when unset.
	AuthPrivateKeyFile string `env:"AUTH_PRIVATE_KEY_FILE"`
	AuthPublicKeyFile  string `env:"AUTH_PUBLIC_KEY_FILE"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
