package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration
type Config struct {
	Version     string `env:"VERSION" envDefault:"0.1.0"`
	Port        int    `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Debug       bool   `env:"DEBUG" envDefault:"false"`
	SentryDSN   string `env:"SENTRY_DSN"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Token lifecycle
	JWTSecret        string        `env:"JWT_SECRET"`
	TokenTTL         time.Duration `env:"TOKEN_TTL" envDefault:"60m"`
	TokenTTLRemember time.Duration `env:"TOKEN_TTL_REMEMBER" envDefault:"168h"`
	RefreshGrace     time.Duration `env:"REFRESH_GRACE" envDefault:"30m"`

	// Request gates
	Maintenance  bool    `env:"MAINTENANCE" envDefault:"false"`
	MaxBodyBytes int64   `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	LoginRate    float64 `env:"LOGIN_RATE" envDefault:"5"`
	LoginBurst   int     `env:"LOGIN_BURST" envDefault:"10"`

	// Repository cache
	UserCacheTTL time.Duration `env:"USER_CACHE_TTL" envDefault:"5m"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsEnvProd() bool {
	if c.Environment == "prod" && c.SentryDSN != "" {
		return true
	}
	return false
}
