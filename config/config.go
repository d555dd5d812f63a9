package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string   `env:"HTTP_ADDR" envDefault:":3000"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	JWTSecret   string   `env:"JWT_SECRET"`

	DBDSN      string `env:"DB_DSN" envDefault:"root:@tcp(127.0.0.1:3306)/duty_roster?charset=utf8mb4&parseTime=True&loc=Local"`
	DBLogLevel string `env:"DB_LOG_LEVEL" envDefault:"warn"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Redis Redis

	LockTimeout time.Duration `env:"LOCK_TIMEOUT" envDefault:"5s"`
	LockTTL     time.Duration `env:"LOCK_TTL" envDefault:"30s"`
}

// Redis is only dialed when Enabled; otherwise hierarchy locks stay in process.
type Redis struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"false"`
	Addr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadEnv reads the given dotenv files that exist. Variables already set in the
// process environment win.
func LoadEnv(envFiles ...string) (int, error) {
	exists := make([]string, 0, len(envFiles))
	for _, path := range envFiles {
		if _, err := os.Stat(path); err == nil {
			exists = append(exists, path)
		}
	}
	if len(exists) == 0 {
		return 0, nil
	}
	if err := godotenv.Load(exists...); err != nil {
		return 0, fmt.Errorf("load env files: %w", err)
	}
	return len(exists), nil
}

// Parse loads the env files and fills Config without validating it. The
// seeder uses it directly since it never signs or checks tokens.
func Parse(envFiles ...string) (*Config, error) {
	if _, err := LoadEnv(envFiles...); err != nil {
		return nil, err
	}
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

func Load(envFiles ...string) (*Config, error) {
	c, err := Parse(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.LockTimeout <= 0 {
		return fmt.Errorf("LOCK_TIMEOUT must be positive, got %s", c.LockTimeout)
	}
	if c.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL must be positive, got %s", c.LockTTL)
	}
	if c.Redis.Enabled && strings.TrimSpace(c.Redis.Addr) == "" {
		return fmt.Errorf("REDIS_ADDR is required when REDIS_ENABLED is set")
	}
	return nil
}
