// Package config loads the YAML configuration, filling defaults for
// anything the file leaves out.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	DBPath string       `yaml:"db_path"`
	Model  string       `yaml:"model"` // tokenizer vocabulary for the meter
	Recall RecallConfig `yaml:"recall"`
	Meter  MeterConfig  `yaml:"meter"`
}

// RecallConfig holds the ranking constants. These are policy knobs, not
// a tuned relevance model.
type RecallConfig struct {
	OverlapWeight     float64 `yaml:"overlap_weight"`
	FreshnessDays     int     `yaml:"freshness_days"`
	RecencyWindowDays int     `yaml:"recency_window_days"`
}

// MeterConfig holds the point-charging policy.
type MeterConfig struct {
	Multiplier float64 `yaml:"multiplier"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DBPath: filepath.Join(home, ".aura-memory", "memory.db"),
		Model:  "gpt-4o",
		Recall: RecallConfig{
			OverlapWeight:     10,
			FreshnessDays:     30,
			RecencyWindowDays: 7,
		},
		Meter: MeterConfig{Multiplier: 1.5},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error. AURA_MEMORY_DB overrides the db path either way.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if env := os.Getenv("AURA_MEMORY_DB"); env != "" {
		cfg.DBPath = env
	}
	return cfg, nil
}
