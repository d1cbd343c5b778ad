package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string        `mapstructure:"SERVER_PORT"`
	RedisURL   string        `mapstructure:"REDIS_URL"`
	CacheTTL   time.Duration `mapstructure:"CACHE_TTL"`
	BodyLimit  int           `mapstructure:"BODY_LIMIT"`
	MaxTokens  int           `mapstructure:"MAX_TOKENS"`
	LogLevel   string        `mapstructure:"LOG_LEVEL"`
}

func Load() (*Config, error) {
	// A missing .env is fine; the process environment still applies.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CACHE_TTL", "10m")
	viper.SetDefault("BODY_LIMIT", 1<<20)
	viper.SetDefault("MAX_TOKENS", 65536)
	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative: %s", c.CacheTTL)
	}
	if c.BodyLimit <= 0 {
		return fmt.Errorf("BODY_LIMIT must be positive: %d", c.BodyLimit)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("MAX_TOKENS must not be negative: %d", c.MaxTokens)
	}
	return nil
}
