package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	SessionRedis  = "redis"
	SessionJWT    = "jwt"
	SessionMemory = "memory"
)

type Config struct {
	Port           string `env:"PORT,            default=8080"`
	Env            string `env:"ENV,             default=development"`
	LogLevel       string `env:"LOG_LEVEL,       default=info"`
	StoreBackend   string `env:"STORE_BACKEND,   default=mongo"`
	BcryptCost     int    `env:"BCRYPT_COST,     default=10"`
	StartupRetries uint64 `env:"STARTUP_RETRIES, default=5"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Session SessionConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=studentdb"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

type SessionConfig struct {
	Backend      string        `env:"SESSION_BACKEND, default=redis"`
	Secret       string        `env:"SESSION_SECRET"`
	TTL          time.Duration `env:"SESSION_TTL,     default=24h"`
	CookieName   string        `env:"SESSION_COOKIE,  default=student_session"`
	CookieSecure bool          `env:"COOKIE_SECURE,   default=false"`
}

// NeedsRedis reports whether the selected session backend talks to Redis.
// The jwt backend keeps its denylist there.
func (c *Config) NeedsRedis() bool {
	return c.Session.Backend == SessionRedis || c.Session.Backend == SessionJWT
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects unknown backends and incomplete session settings.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreBackend {
	case StoreMongo, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND: unknown backend %q", c.StoreBackend))
	}

	switch c.Session.Backend {
	case SessionRedis, SessionMemory:
	case SessionJWT:
		if c.Session.Secret == "" {
			errs = append(errs, errors.New("SESSION_SECRET is required for the jwt session backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("SESSION_BACKEND: unknown backend %q", c.Session.Backend))
	}

	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("SESSION_COOKIE must not be empty"))
	}

	return errors.Join(errs...)
}

// Process reads configuration from the given lookuper and validates it.
func Process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	return cfg
}
