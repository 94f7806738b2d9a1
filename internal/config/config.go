// Package config loads application settings from an optional YAML file and
// EXAMTERM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all tunable test-administration settings.
type Config struct {
	// BankPath is the question bank file; empty means the embedded sample.
	BankPath string `mapstructure:"bank_path"`

	// BatchSize is how many questions each adaptive batch draws.
	BatchSize int `mapstructure:"batch_size"`

	// MaxWarnings is the integrity-warning count that force-completes a
	// test.
	MaxWarnings int `mapstructure:"max_warnings"`

	// FeedbackDelay is how long per-answer feedback stays on screen.
	FeedbackDelay time.Duration `mapstructure:"feedback_delay"`

	// PracticeCount is the number of questions served in practice mode.
	PracticeCount int `mapstructure:"practice_count"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BatchSize:     5,
		MaxWarnings:   3,
		FeedbackDelay: 1500 * time.Millisecond,
		PracticeCount: 3,
	}
}

// Load reads configuration from $XDG_CONFIG_HOME/examterm/config.yaml (when
// present) and the environment. A missing config file is not an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}

	def := Default()
	v.SetDefault("bank_path", "")
	v.SetDefault("batch_size", def.BatchSize)
	v.SetDefault("max_warnings", def.MaxWarnings)
	v.SetDefault("feedback_delay", def.FeedbackDelay.String())
	v.SetDefault("practice_count", def.PracticeCount)

	v.SetEnvPrefix("EXAMTERM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.BatchSize < 1 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.MaxWarnings < 1 {
		cfg.MaxWarnings = def.MaxWarnings
	}
	if cfg.FeedbackDelay <= 0 {
		cfg.FeedbackDelay = def.FeedbackDelay
	}
	if cfg.PracticeCount < 1 {
		cfg.PracticeCount = def.PracticeCount
	}

	return cfg, nil
}

func configDir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "examterm"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "examterm"), nil
}
