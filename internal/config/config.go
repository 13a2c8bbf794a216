// ABOUTME: File-based configuration for the marksweep command
// ABOUTME: Loads TOML settings over defaults and converts them into a gc.Config

// Package config holds the settings of the marksweep command.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/slog"

	"github.com/prateek/marksweep/gc"
)

// ErrInvalid is returned for settings that cannot configure a Manager
var ErrInvalid = errors.New("config: invalid setting")

// Config is the on-disk configuration
type Config struct {
	StackCapacity     int    `toml:"stack_capacity"`
	BaselineThreshold int    `toml:"baseline_threshold"`
	MaxObjects        int    `toml:"max_objects"`
	LogLevel          string `toml:"log_level"`
	Color             bool   `toml:"color"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		StackCapacity:     gc.DefaultStackCapacity,
		BaselineThreshold: gc.DefaultBaselineThreshold,
		LogLevel:          "info",
		Color:             true,
	}
}

// Load reads a TOML file on top of the defaults. Unknown keys are an error
// so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges
func (c Config) Validate() error {
	switch {
	case c.StackCapacity <= 0:
		return fmt.Errorf("%w: stack_capacity must be positive, got %d", ErrInvalid, c.StackCapacity)
	case c.BaselineThreshold <= 0:
		return fmt.Errorf("%w: baseline_threshold must be positive, got %d", ErrInvalid, c.BaselineThreshold)
	case c.MaxObjects < 0:
		return fmt.Errorf("%w: max_objects must not be negative, got %d", ErrInvalid, c.MaxObjects)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// Level returns the parsed log level, defaulting to info
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Write encodes the settings as TOML
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// GC converts the settings into a Manager configuration
func (c Config) GC(logger *slog.Logger, onCollect func(gc.Stats)) gc.Config {
	return gc.Config{
		StackCapacity:     c.StackCapacity,
		BaselineThreshold: c.BaselineThreshold,
		MaxObjects:        c.MaxObjects,
		Logger:            logger,
		OnCollect:         onCollect,
	}
}
