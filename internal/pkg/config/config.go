package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Reset   ResetConfig
	Mail    MailConfig
	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET"`
	JWTTTL        time.Duration `env:"JWT_TTL,         default=24h"`
	HashAlgorithm string        `env:"HASH_ALGORITHM,  default=sha256"`
	// RateLimit is the number of requests per minute a client may send to
	// each public auth endpoint. Zero disables limiting.
	RateLimit int `env:"AUTH_RATE_LIMIT, default=20"`
}

type ResetConfig struct {
	URLBase  string        `env:"RESET_URL_BASE,  default=http://localhost:8080/account/reset"`
	TokenTTL time.Duration `env:"RESET_TOKEN_TTL, default=30m"`
}

type MailConfig struct {
	From string `env:"MAIL_FROM, default=no-reply@tutorlink.local"`
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER, default=mongo"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tutorlink"`
}

// RedisConfig configures the skill cache and the rate limiter. An empty Addr
// disables both.
type RedisConfig struct {
	Addr          string        `env:"REDIS_ADDR"`
	Password      string        `env:"REDIS_PASSWORD"`
	DB            int           `env:"REDIS_DB,        default=0"`
	SkillCacheTTL time.Duration `env:"SKILL_CACHE_TTL, default=5m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverMongo, DriverMemory, c.Storage.Driver)
	}
	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.Auth.RateLimit < 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT must not be negative")
	}
	return nil
}
