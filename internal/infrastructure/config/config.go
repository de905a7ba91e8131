package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	TokenStoreMemory = "memory"
	TokenStoreRedis  = "redis"
	TokenStoreMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	BackendURL      string `env:"BACKEND_URL,      default=http://localhost:3000"`
	DisplayTimezone string `env:"DISPLAY_TIMEZONE, default=Local"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Limits  LimitConfig
	OTel    OTelConfig
}

type SessionConfig struct {
	CookieName   string        `env:"CLIENT_COOKIE,      default=clinic_client"`
	CookieSecure bool          `env:"COOKIE_SECURE,      default=false"`
	IdleTTL      time.Duration `env:"WORKSPACE_IDLE_TTL, default=30m"`
	Store        string        `env:"TOKEN_STORE,        default=memory"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,          default=24h"`
	SealKey      string        `env:"TOKEN_SEAL_KEY"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=clinic_web"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type LimitConfig struct {
	// AuthRate is the sustained rate of login and register posts per
	// client IP, in requests per second.
	AuthRate  float64 `env:"LOGIN_RATE_LIMIT, default=1"`
	AuthBurst int     `env:"LOGIN_RATE_BURST, default=5"`
}

type OTelConfig struct {
	Enabled     bool    `env:"OTEL_ENABLED,                default=false"`
	Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT, default=localhost:4317"`
	SampleRatio float64 `env:"OTEL_SAMPLING_RATIO,         default=1"`
}

// Load reads an optional .env file, then the environment, using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case TokenStoreMemory, TokenStoreRedis, TokenStoreMongo:
	default:
		return fmt.Errorf("config: TOKEN_STORE must be memory, redis or mongo, got %q", c.Session.Store)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves DISPLAY_TIMEZONE.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("config: DISPLAY_TIMEZONE: %w", err)
	}
	return loc, nil
}

// Development reports whether ENV selects the development profile.
func (c *Config) Development() bool {
	return c.Env == "development"
}
