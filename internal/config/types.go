// Package config loads rclonewrap's settings from a sandboxed Lua file.
//
// The file defines a global "rclonewrap" table and can branch on the
// read-only "platform" table:
//
//	rclonewrap = {
//	    install_dir = platform.when(platform.is_windows, "C:/tools/rclone"),
//	    verify      = true,
//	    keyring     = "/etc/rclonewrap/rclone.asc",
//	    env         = { RCLONE_CONFIG = "/etc/rclone.conf" },
//	}
//
// A missing file yields the defaults. Environment variables override the
// file for the install directory and the download base URL.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
)

// DefaultBaseURL is the rclone download server.
const DefaultBaseURL = "https://downloads.rclone.org"

// Environment variables read by Load.
const (
	EnvConfigPath = "RCLONEWRAP_CONFIG"
	EnvInstallDir = "RCLONEWRAP_INSTALL_DIR"
	EnvBaseURL    = "RCLONEWRAP_BASE_URL"
	EnvDebug      = "RCLONEWRAP_DEBUG"
)

// Config holds the wrapper settings.
type Config struct {
	// InstallDir is the directory holding the rclone executable.
	InstallDir string
	// CacheDir receives downloaded archives while an update runs.
	CacheDir string
	// BaseURL is the download server root.
	BaseURL string
	// Version pins a release ("v1.68.2"); empty means the current release.
	Version string
	// Verify checks the archive against the release SHA256SUMS.
	Verify bool
	// Keyring is an armored PGP public key file used to check the
	// SHA256SUMS signature when Verify is set.
	Keyring string
	// Env is added to the environment of every rclone process.
	Env map[string]string
	// Source is the file the config was read from, empty for defaults.
	Source string
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		InstallDir: DefaultInstallDir(),
		BaseURL:    DefaultBaseURL,
	}
}

// DefaultInstallDir returns the "bin" directory next to the running
// executable, falling back to "./bin" when the executable path is unknown.
func DefaultInstallDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "bin"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "bin")
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.InstallDir == "" {
		return fmt.Errorf("install_dir must not be empty")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", c.BaseURL)
	}

	if c.Version != "" && !semver.IsValid(c.Version) {
		return fmt.Errorf("invalid version %q: expected a release tag such as v1.68.2", c.Version)
	}

	if c.Keyring != "" && !c.Verify {
		return fmt.Errorf("keyring is set but verify is disabled")
	}

	return nil
}

// Environ returns Env as KEY=value pairs.
func (c *Config) Environ() []string {
	if len(c.Env) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.Env))
	for k, v := range c.Env {
		out = append(out, k+"="+v)
	}
	return out
}
