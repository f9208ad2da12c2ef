package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []int{2, 4, 3, 2, 1}, cfg.Architecture)
	assert.Equal(t, 0.5, cfg.LearningRate)
	assert.Equal(t, 10000, cfg.Steps)
	assert.Equal(t, uint64(0), cfg.Seed)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
architecture: [2, 2, 1]
learning_rate: 0.8
seed: 42
log_format: json
`))
	require.NoError(t, err)

	assert.Equal(t, []int{2, 2, 1}, cfg.Architecture)
	assert.Equal(t, 0.8, cfg.LearningRate)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10000, cfg.Steps, "unset keys keep their defaults")
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("momentum: 0.9\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"single layer", func(c *Config) { c.Architecture = []int{2} }},
		{"zero layer", func(c *Config) { c.Architecture = []int{2, 0, 1} }},
		{"lr too small", func(c *Config) { c.LearningRate = 0.001 }},
		{"lr too large", func(c *Config) { c.LearningRate = 3 }},
		{"negative steps", func(c *Config) { c.Steps = -1 }},
		{"no trials", func(c *Config) { c.Trials = 0 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: 500\ntrials: 4\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Steps)
	assert.Equal(t, 4, cfg.Trials)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	cfg := Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"
	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "step", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"step":3`)

	buf.Reset()
	cfg.LogFormat = "text"
	cfg.LogLevel = "DEBUG"
	logger, err = cfg.NewLogger(&buf)
	require.NoError(t, err)
	logger.Debug("detail")
	assert.Contains(t, buf.String(), "msg=detail")
}
