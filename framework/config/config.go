package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig wraps every env parsing failure returned by Load.
var ErrParsingConfig = errors.New("config: failed to parse environment")

// Config is the central typed configuration struct.
// Embed or extend it in your app's own AppConfig.
type Config struct {
	App       AppConfig
	Log       LogConfig
	Session   SessionConfig
	Redis     RedisConfig
	Validator ValidatorConfig
}

type AppConfig struct {
	Name  string `env:"APP_NAME" envDefault:"GoLaravel"`
	Env   string `env:"APP_ENV" envDefault:"local"` // local | production | testing
	Debug bool   `env:"APP_DEBUG" envDefault:"true"`
	URL   string `env:"APP_URL" envDefault:"http://localhost"`
	Port  string `env:"APP_PORT" envDefault:"8000"`
	Key   string `env:"APP_KEY"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`  // debug | info | warn | error
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json | text
}

type SessionConfig struct {
	Driver   string        `env:"SESSION_DRIVER" envDefault:"memory"` // memory | redis
	Cookie   string        `env:"SESSION_COOKIE" envDefault:"laravel_session"`
	Lifetime time.Duration `env:"SESSION_LIFETIME" envDefault:"2h"`
}

type RedisConfig struct {
	URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
}

// ValidatorConfig controls where validated input is kept between the
// route filter and the handler.
type ValidatorConfig struct {
	InputStore string        `env:"VALIDATOR_INPUT_STORE" envDefault:"memory"` // memory | redis
	InputTTL   time.Duration `env:"VALIDATOR_INPUT_TTL" envDefault:"10m"`
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool { return c.App.Env == "production" }

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg, err := config.Load()
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	return &cfg, nil
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	i, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return b
}
