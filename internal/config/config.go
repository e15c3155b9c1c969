// Package config resolves tool settings from defaults, an optional TOML
// file, and PLANK_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds the runtime settings of the tool.
type Config struct {
	DBPath   string `toml:"db_path"`
	BlobDir  string `toml:"blob_dir"`
	NoColor  bool   `toml:"no_color"`
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings: data under ~/.config/plank, info
// logging, color on.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	base := filepath.Join(home, ".config", "plank")
	return Config{
		DBPath:   filepath.Join(base, "plank.db"),
		BlobDir:  filepath.Join(base, "blobs"),
		LogLevel: "info",
	}, nil
}

// Load resolves the effective configuration. A missing config file is not an
// error; a malformed one is.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	path := os.Getenv("PLANK_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".config", "plank", "config.toml")
	}

	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PLANK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PLANK_BLOB_DIR"); v != "" {
		cfg.BlobDir = v
	}
	if v := os.Getenv("PLANK_NO_COLOR"); v != "" {
		cfg.NoColor, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PLANK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
