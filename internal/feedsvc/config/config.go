package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        string   `env:"FEED_SERVICE_PORT" envDefault:"8090"`
	NatsURL     string   `env:"NATS_URL"` // nats.DefaultURL when empty
	NatsToken   string   `env:"NATS_TOKEN"`
	RateLimit   int      `env:"RATE_LIMIT" envDefault:"120"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	LogDir      string   `env:"LOG_DIR" envDefault:".l_g"`
}

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RateLimit <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT must be positive, got %d", cfg.RateLimit)
	}
	return cfg, nil
}
