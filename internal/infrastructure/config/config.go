package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const envProduction = "production"

// Config is loaded once at startup and passed by value to whatever needs it.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=10s"`

	// StrictTransitions enables the pending → confirmed → completed
	// appointment workflow. Off by default: any status may move to any other.
	StrictTransitions bool `env:"APPOINTMENT_STRICT_TRANSITIONS, default=false"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET, required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=1h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
	// CookieSecure is tri-state: empty means "secure in production only".
	CookieSecure string `env:"COOKIE_SECURE"`
	// DenyList turns on Redis-backed revocation of logged-out tokens.
	DenyList bool `env:"TOKEN_DENYLIST, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=salon"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context) (Config, error) {
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom processes configuration from l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must not be blank")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.Auth.CookieSecure != "" {
		if _, err := strconv.ParseBool(c.Auth.CookieSecure); err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
	}
	return nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, envProduction)
}

// SecureCookies reports whether the session cookie carries the Secure flag.
func (c Config) SecureCookies() bool {
	if v, err := strconv.ParseBool(c.Auth.CookieSecure); err == nil {
		return v
	}
	return c.IsProduction()
}

func (c Config) Addr() string {
	return ":" + c.Port
}
