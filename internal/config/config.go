// Package config loads xornet run settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/xornet/internal/optim"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings of a training or trials run.
type Config struct {
	Architecture []int   `yaml:"architecture"`
	LearningRate float64 `yaml:"learning_rate"`
	Steps        int     `yaml:"steps"`
	Seed         uint64  `yaml:"seed"` // 0 picks a random seed
	Trials       int     `yaml:"trials"`
	Workers      int     `yaml:"workers"`
	LogLevel     string  `yaml:"log_level"`  // debug, info, warn, error
	LogFormat    string  `yaml:"log_format"` // text, json
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Architecture: []int{2, 4, 3, 2, 1},
		LearningRate: optim.DefaultLR,
		Steps:        10000,
		Trials:       20,
		Workers:      runtime.NumCPU(),
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if len(c.Architecture) < 2 {
		return fmt.Errorf("%w: architecture needs at least 2 layers, got %v", ErrInvalidConfig, c.Architecture)
	}
	for i, size := range c.Architecture {
		if size <= 0 {
			return fmt.Errorf("%w: layer %d has size %d", ErrInvalidConfig, i, size)
		}
	}
	if c.LearningRate < optim.MinLR || c.LearningRate > optim.MaxLR {
		return fmt.Errorf("%w: learning_rate %v outside [%v, %v]",
			ErrInvalidConfig, c.LearningRate, optim.MinLR, optim.MaxLR)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidConfig, c.Steps)
	}
	if c.Trials < 1 {
		return fmt.Errorf("%w: trials must be at least 1, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, s)
	}
	return level, nil
}

// NewLogger builds a slog logger writing to w with the configured level and
// format.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
