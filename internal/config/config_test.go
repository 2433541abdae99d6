package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.True(t, cfg.Editor.ShowLineNumbers)
	assert.Equal(t, "orus", cfg.Editor.Language)
	assert.Equal(t, "orus.wasm", cfg.Runtime.Asset)
	assert.Equal(t, 30*time.Second, cfg.Runtime.LoadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Runtime.RunTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orusplay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
editor:
  dark: false
runtime:
  base_url: https://cdn.example.com/orus/
  sources:
    - ./orus.wasm
  run_timeout: 2s
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Editor.Dark)
	assert.True(t, cfg.Editor.ShowLineNumbers)
	assert.Equal(t, "https://cdn.example.com/orus/", cfg.Runtime.BaseURL)
	assert.Equal(t, []string{"./orus.wasm"}, cfg.Runtime.Sources)
	assert.Equal(t, 2*time.Second, cfg.Runtime.RunTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orusplay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runtime:\n  asset: a.wasm\n"), 0o644))
	t.Setenv("ORUSPLAY_RUNTIME_ASSET", "b.wasm")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b.wasm", cfg.Runtime.Asset)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orusplay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative height", func(c *Config) { c.Editor.Height = -1 }, "editor.height"},
		{"empty asset", func(c *Config) { c.Runtime.Asset = " " }, "runtime.asset"},
		{"zero load timeout", func(c *Config) { c.Runtime.LoadTimeout = 0 }, "runtime.load_timeout"},
		{"zero run timeout", func(c *Config) { c.Runtime.RunTimeout = 0 }, "runtime.run_timeout"},
		{"relative share url", func(c *Config) { c.Playground.ShareBaseURL = "/play" }, "playground.share_base_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
