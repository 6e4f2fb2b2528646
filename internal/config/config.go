// Package config loads and saves the seventy TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all seventy configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Assets  AssetsConfig  `toml:"assets"`
	Log     LogConfig     `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir    string `toml:"data_dir,omitempty"`
	DateFormat string `toml:"date_format"`
	Currency   string `toml:"currency"`
}

// AssetsConfig controls the offline asset cache.
type AssetsConfig struct {
	BaseURL    string `toml:"base_url,omitempty"`
	Workers    int    `toml:"workers"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// Date layouts offered by the setup wizard. The first matches the
// en-US short date most browsers produce.
var DateFormats = []string{"1/2/2006", "2006-01-02", "02/01/2006", "Jan 2, 2006"}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DateFormat: DateFormats[0],
			Currency:   "$",
		},
		Assets: AssetsConfig{
			Workers:    4,
			TimeoutSec: 15,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "seventy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "seventy")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the directory holding the ledger database.
// SEVENTY_DATA_DIR wins over the config file, which wins over XDG_DATA_HOME.
func DataDir(cfg Config) string {
	if dir := os.Getenv("SEVENTY_DATA_DIR"); dir != "" {
		return dir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "seventy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "seventy")
}

// DBPath returns the full path to the ledger database.
func DBPath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "seventy.db")
}

// CacheDir returns the directory for logs and other disposable files.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "seventy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "seventy")
}

// LogPath returns the log file path from config, falling back to the cache dir.
func LogPath(cfg Config) string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	return filepath.Join(CacheDir(), "seventy.log")
}

// LogLevel returns the log level from env var or config, in that order.
func LogLevel(cfg Config) string {
	if lvl := os.Getenv("SEVENTY_LOG_LEVEL"); lvl != "" {
		return strings.ToLower(lvl)
	}
	return cfg.Log.Level
}

// AssetsBaseURL returns the asset origin from env var or config, in that order.
func AssetsBaseURL(cfg Config) string {
	if u := os.Getenv("SEVENTY_ASSETS_URL"); u != "" {
		return u
	}
	return cfg.Assets.BaseURL
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	if cfg.General.DateFormat == "" {
		cfg.General.DateFormat = DateFormats[0]
	}
	if cfg.Assets.Workers < 1 {
		cfg.Assets.Workers = 4
	}
	if cfg.Assets.TimeoutSec < 1 {
		cfg.Assets.TimeoutSec = 15
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
