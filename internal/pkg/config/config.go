package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Session  SessionConfig
	Redis    RedisConfig
}

// UpstreamConfig locates the inventory REST API the gateway fronts.
type UpstreamConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:3000"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=10s"`
}

// SessionConfig selects and tunes the session persistence backend.
type SessionConfig struct {
	Backend string        `env:"SESSION_BACKEND, default=file"` // file | redis
	Dir     string        `env:"SESSION_DIR,     default=.dashboard/sessions"`
	TTL     time.Duration `env:"SESSION_TTL,     default=168h"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
