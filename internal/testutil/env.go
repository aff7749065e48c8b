// Package testutil provides utilities for testing rclonewrap in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/config"
)

// SetupTestEnv points every rclonewrap environment variable at a fresh
// temp directory so tests never read the user's config file or touch a
// real rclone installation. It returns the isolated install directory.
//
// Cleanup is handled by t.TempDir and t.Setenv.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	installDir := filepath.Join(tmpDir, "bin")

	// A config path that does not exist yields the defaults.
	t.Setenv(config.EnvConfigPath, filepath.Join(tmpDir, "config", "config.lua"))
	t.Setenv(config.EnvInstallDir, installDir)
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvDebug, "")

	if err := os.MkdirAll(installDir, 0o750); err != nil {
		t.Fatalf("failed to create test directory %s: %v", installDir, err)
	}

	return installDir
}

// WriteStub writes a shell script named rclone into dir to stand in for
// the real executable. Tests calling it are skipped on Windows.
func WriteStub(t *testing.T, dir, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub binaries are shell scripts")
	}

	stub := filepath.Join(dir, "rclone")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("cannot create stub binary: %v", err)
	}
	return stub
}
