package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all engine configuration
type Config struct {
	Engine EngineConfig
	Cache  CacheConfig
	Log    LogConfig
}

// EngineConfig holds metric computation settings
type EngineConfig struct {
	// LatencyTarget is the advisory wall-clock budget for one computation.
	// Exceeding it logs a warning, never an error.
	LatencyTarget time.Duration
}

// CacheConfig holds metric cache settings
type CacheConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load reads configuration from an optional config file and ENGINE_*
// environment variables, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		Engine: EngineConfig{
			LatencyTarget: v.GetDuration("engine.latency_target"),
		},
		Cache: CacheConfig{
			TTL:             v.GetDuration("cache.ttl"),
			CleanupInterval: v.GetDuration("cache.cleanup_interval"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.latency_target", 10*time.Millisecond)
	v.SetDefault("cache.ttl", 60*time.Second)
	v.SetDefault("cache.cleanup_interval", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
}

func (c *Config) validate() error {
	if c.Engine.LatencyTarget <= 0 {
		return fmt.Errorf("engine.latency_target must be positive, got %s", c.Engine.LatencyTarget)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("cache.cleanup_interval must be positive, got %s", c.Cache.CleanupInterval)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
