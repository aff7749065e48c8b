package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/platform"
)

// DefaultPath returns $RCLONEWRAP_CONFIG, or config.lua under the user
// config directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config directory: %w", err)
	}
	return filepath.Join(dir, "rclonewrap", "config.lua"), nil
}

// Load reads the config file at path (DefaultPath when empty), applies
// environment overrides and validates the result. A missing file is not
// an error.
func Load(ctx context.Context, path string, info *platform.Info) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := NewParser(info).ParseFile(ctx, path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	applyEnv(cfg)

	if cfg.CacheDir == "" {
		cfg.CacheDir = filepath.Join(cfg.InstallDir, ".download")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvInstallDir); v != "" {
		cfg.InstallDir = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
}

// DebugEnabled reports whether RCLONEWRAP_DEBUG asks for debug logging.
func DebugEnabled() bool {
	switch os.Getenv(EnvDebug) {
	case "1", "true", "yes":
		return true
	}
	return false
}
