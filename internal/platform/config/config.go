// Package config loads the bot configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"local"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	BotToken   string `env:"BOT_TOKEN,required"`
	HealthPort int    `env:"HEALTH_PORT" envDefault:"8080"`

	// Telegram long polling
	UpdateTimeout int     `env:"UPDATE_TIMEOUT" envDefault:"60"`
	ReplyRPS      float64 `env:"REPLY_RPS" envDefault:"20"`
	ReplyBurst    int     `env:"REPLY_BURST" envDefault:"5"`

	// Document store access
	StorageTimeout time.Duration `env:"STORAGE_TIMEOUT" envDefault:"15s"`

	// Progress reporting
	ProgressStepDelay  time.Duration `env:"PROGRESS_STEP_DELAY" envDefault:"1s"`
	ProgressMaxUpdates int           `env:"PROGRESS_MAX_UPDATES" envDefault:"0"` // 0 = one message per item
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.StorageTimeout <= 0:
		return fmt.Errorf("STORAGE_TIMEOUT must be positive, got %s", c.StorageTimeout)
	case c.ProgressStepDelay < 0:
		return fmt.Errorf("PROGRESS_STEP_DELAY must not be negative, got %s", c.ProgressStepDelay)
	case c.ProgressMaxUpdates < 0:
		return fmt.Errorf("PROGRESS_MAX_UPDATES must not be negative, got %d", c.ProgressMaxUpdates)
	case c.ReplyRPS <= 0:
		return fmt.Errorf("REPLY_RPS must be positive, got %v", c.ReplyRPS)
	case c.ReplyBurst < 1:
		return fmt.Errorf("REPLY_BURST must be at least 1, got %d", c.ReplyBurst)
	}

	return nil
}
