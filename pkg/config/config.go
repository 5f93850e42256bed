package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "mossx"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	Redis    RedisConfig
	HTTP     HTTPConfig
	Eventing EventingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MOSSX_APP_ENV" default:"development"`
	Port         string `envconfig:"MOSSX_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MOSSX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MOSSX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// AuthConfig describes how identity-provider session tokens are verified.
// The provider issues the tokens; this service only checks them.
type AuthConfig struct {
	Secret string        `envconfig:"MOSSX_AUTH_SECRET" required:"true"`
	Issuer string        `envconfig:"MOSSX_AUTH_ISSUER" default:"https://clerk.mossx.app"`
	Leeway time.Duration `envconfig:"MOSSX_AUTH_LEEWAY" default:"30s"`
}

type CatalogConfig struct {
	PageSize      int           `envconfig:"MOSSX_CATALOG_PAGE_SIZE" default:"5"`
	LoadMoreDelay time.Duration `envconfig:"MOSSX_CATALOG_LOAD_MORE_DELAY" default:"0s"`
	TrendingLimit int           `envconfig:"MOSSX_CATALOG_TRENDING_LIMIT" default:"10"`
}

func (c CatalogConfig) validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("catalog page size must be positive, got %d", c.PageSize)
	}
	if c.TrendingLimit <= 0 {
		return fmt.Errorf("catalog trending limit must be positive, got %d", c.TrendingLimit)
	}
	return nil
}

// RedisConfig is optional; when URL is empty the API runs without
// idempotency replay.
type RedisConfig struct {
	URL          string        `envconfig:"MOSSX_REDIS_URL"`
	PoolSize     int           `envconfig:"MOSSX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MOSSX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MOSSX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MOSSX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MOSSX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `envconfig:"MOSSX_HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"MOSSX_HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"MOSSX_HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"MOSSX_HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
}

type EventingConfig struct {
	IdempotencyTTL time.Duration `envconfig:"MOSSX_IDEMPOTENCY_TTL" default:"24h"`
}
