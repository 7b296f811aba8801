package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment
type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	ApplicationID string `env:"APPLICATION_ID"`

	// GuildID registers commands on one server only, for development
	GuildID string `env:"GUILD_ID"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	ResetTimezone string `env:"RESET_TIMEZONE" envDefault:"America/New_York"`
	ResetHour     int    `env:"RESET_HOUR" envDefault:"0"`
	ResetMinute   int    `env:"RESET_MINUTE" envDefault:"0"`

	DefaultSessionLimit int `env:"DEFAULT_SESSION_LIMIT" envDefault:"3"`
	DefaultMemberLimit  int `env:"DEFAULT_MEMBER_LIMIT" envDefault:"1"`

	// PremiumSessionLimit is the plan size above which custom listing images unlock
	PremiumSessionLimit int `env:"PREMIUM_SESSION_LIMIT" envDefault:"3"`

	DefaultImageURL string `env:"DEFAULT_IMAGE_URL" envDefault:"https://cdn.discordapp.com/attachments/808508638918475808/1328923195855867905/scoutmaster.jpg"`

	OperationTimeout time.Duration `env:"OPERATION_TIMEOUT" envDefault:"30s"`
	ResetConcurrency int           `env:"RESET_CONCURRENCY" envDefault:"4"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`

	location *time.Location
}

// Load reads an optional .env file and then the environment. Values already
// set in the environment win over the file.
func Load(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	loc, err := time.LoadLocation(c.ResetTimezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("RESET_TIMEZONE %q: %w", c.ResetTimezone, err))
	}
	c.location = loc

	if c.ResetHour < 0 || c.ResetHour > 23 {
		errs = append(errs, fmt.Errorf("RESET_HOUR must be between 0 and 23, got %d", c.ResetHour))
	}
	if c.ResetMinute < 0 || c.ResetMinute > 59 {
		errs = append(errs, fmt.Errorf("RESET_MINUTE must be between 0 and 59, got %d", c.ResetMinute))
	}
	if c.DefaultSessionLimit < 1 {
		errs = append(errs, fmt.Errorf("DEFAULT_SESSION_LIMIT must be at least 1, got %d", c.DefaultSessionLimit))
	}
	if c.DefaultMemberLimit < 1 {
		errs = append(errs, fmt.Errorf("DEFAULT_MEMBER_LIMIT must be at least 1, got %d", c.DefaultMemberLimit))
	}
	if c.PremiumSessionLimit < 1 {
		errs = append(errs, fmt.Errorf("PREMIUM_SESSION_LIMIT must be at least 1, got %d", c.PremiumSessionLimit))
	}
	if c.OperationTimeout <= 0 {
		errs = append(errs, fmt.Errorf("OPERATION_TIMEOUT must be positive, got %s", c.OperationTimeout))
	}
	if c.ResetConcurrency < 1 {
		errs = append(errs, fmt.Errorf("RESET_CONCURRENCY must be at least 1, got %d", c.ResetConcurrency))
	}

	return errors.Join(errs...)
}

// Location is the reset timezone, resolved during Load
func (c *Config) Location() *time.Location {
	return c.location
}
