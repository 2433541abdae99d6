package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ORUSPLAY_RUNTIME_BASE_URL.
const EnvPrefix = "ORUSPLAY"

// Config is the root configuration.
type Config struct {
	Editor     EditorConfig     `mapstructure:"editor"`
	Runtime    RuntimeConfig    `mapstructure:"runtime"`
	Log        LogConfig        `mapstructure:"log"`
	Playground PlaygroundConfig `mapstructure:"playground"`
}

// EditorConfig holds display preferences for the terminal editor.
type EditorConfig struct {
	ShowLineNumbers bool   `mapstructure:"show_line_numbers"`
	Dark            bool   `mapstructure:"dark"`
	Language        string `mapstructure:"language"`
	Height          int    `mapstructure:"height"`
	HistoryLimit    int    `mapstructure:"history_limit"`
}

// RuntimeConfig says where the Orus runtime module is found and how long it
// may take.
type RuntimeConfig struct {
	// BaseURL is a URL or directory the asset is resolved against.
	BaseURL string `mapstructure:"base_url"`
	Asset   string `mapstructure:"asset"`
	// Sources, when set, are tried before the locations derived from BaseURL.
	Sources     []string      `mapstructure:"sources"`
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
	RunTimeout  time.Duration `mapstructure:"run_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type PlaygroundConfig struct {
	ShareBaseURL string `mapstructure:"share_base_url"`
}

// SlogLevel returns the configured level. Validate guarantees it parses.
func (c LogConfig) SlogLevel() slog.Level {
	var l slog.Level
	_ = l.UnmarshalText([]byte(c.Level))
	return l
}

// Load reads orusplay.yaml from path when given, otherwise from
// $HOME/.config/orusplay and the working directory. A missing file is not an
// error; defaults and environment still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("orusplay")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "orusplay"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	applyDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks value ranges and formats.
func Validate(cfg *Config) error {
	if cfg.Editor.Height < 0 {
		return fmt.Errorf("editor.height must be >= 0, got %d", cfg.Editor.Height)
	}

	if strings.TrimSpace(cfg.Runtime.Asset) == "" {
		return fmt.Errorf("runtime.asset cannot be empty")
	}
	if cfg.Runtime.LoadTimeout <= 0 {
		return fmt.Errorf("runtime.load_timeout must be positive, got %v", cfg.Runtime.LoadTimeout)
	}
	if cfg.Runtime.RunTimeout <= 0 {
		return fmt.Errorf("runtime.run_timeout must be positive, got %v", cfg.Runtime.RunTimeout)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return fmt.Errorf("log.level must be one of: [debug info warn error], got %s", cfg.Log.Level)
	}

	if base := cfg.Playground.ShareBaseURL; base != "" {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("playground.share_base_url must be an absolute URL, got %s", base)
		}
	}
	return nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("editor.show_line_numbers", true)
	v.SetDefault("editor.dark", true)
	v.SetDefault("editor.language", "orus")
	v.SetDefault("editor.height", 0)
	v.SetDefault("editor.history_limit", 1000)

	v.SetDefault("runtime.base_url", "")
	v.SetDefault("runtime.asset", "orus.wasm")
	v.SetDefault("runtime.sources", []string{})
	v.SetDefault("runtime.load_timeout", "30s")
	v.SetDefault("runtime.run_timeout", "10s")
	v.SetDefault("runtime.user_agent", "orusplay")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")

	v.SetDefault("playground.share_base_url", "https://orus.dev/playground")
}
