// Package config provides Viper-based configuration loading for the battle simulator.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is where log lines are written: "stderr", "stdout", or a file path.
	Output string `mapstructure:"output"`
}

// SimConfig holds batch simulation settings.
type SimConfig struct {
	// Runs is the number of battles simulated per invocation.
	Runs int `mapstructure:"runs"`
	// Workers is the number of battles resolved concurrently.
	Workers int `mapstructure:"workers"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig       `mapstructure:"logging"`
	Combat  combat.Settings     `mapstructure:"combat"`
	Stats   character.Constants `mapstructure:"stats"`
	Sim     SimConfig           `mapstructure:"sim"`
}

// Default returns the configuration used when no file or environment override is present.
//
// Postcondition: Default().Validate() == nil.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "json", Output: "stderr"},
		Combat:  combat.DefaultSettings(),
		Stats:   character.DefaultConstants(),
		Sim:     SimConfig{Runs: 1, Workers: 4},
	}
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := c.Combat.Validate(); err != nil {
		errs = append(errs, "combat: "+err.Error())
	}
	if err := c.Stats.Validate(); err != nil {
		errs = append(errs, "stats: "+err.Error())
	}
	if err := validateSim(c.Sim); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

func validateSim(s SimConfig) error {
	var errs []string
	if s.Runs < 1 {
		errs = append(errs, fmt.Sprintf("sim.runs must be >= 1, got %d", s.Runs))
	}
	if s.Workers < 1 {
		errs = append(errs, fmt.Sprintf("sim.workers must be >= 1, got %d", s.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	}

	// Environment variable overrides with SKIRMISH_ prefix
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := setDefaults(v); err != nil {
		return Config{}, err
	}

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key of Default so that each one can be
// overridden from the environment.
func setDefaults(v *viper.Viper) error {
	d := Default()
	sections := map[string]any{
		"logging": d.Logging,
		"combat":  d.Combat,
		"stats":   d.Stats,
		"sim":     d.Sim,
	}
	for section, defaults := range sections {
		var flat map[string]any
		if err := mapstructure.Decode(defaults, &flat); err != nil {
			return fmt.Errorf("flattening %s defaults: %w", section, err)
		}
		for key, val := range flat {
			v.SetDefault(section+"."+key, val)
		}
	}
	return nil
}
