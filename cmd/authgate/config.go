package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/authgate"
	"github.com/dmitrymomot/authgate/pkg/db"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/redis"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"15s"`
	CORSOrigins     []string      `env:"HTTP_CORS_ORIGINS" envSeparator:","`

	Routing authgate.RoutingStrategy `env:"API_ROUTING" envDefault:"default"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty,unset"`
	JWTIssuer string `env:"JWT_ISSUER"`

	UserCacheTTL time.Duration `env:"USER_CACHE_TTL" envDefault:"5m"`

	PurgeSchedule string        `env:"PURGE_SCHEDULE" envDefault:"@every 1h"`
	PurgeTimeout  time.Duration `env:"PURGE_TIMEOUT" envDefault:"1m"`

	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"authgate"`

	Log    logger.Config
	Sentry logger.SentryConfig
	DB     db.Config
	Redis  redis.Config
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
