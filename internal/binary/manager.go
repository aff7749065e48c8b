package binary

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/config"
	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/platform"
)

// Manager orchestrates download, verification, and installation
type Manager struct {
	installDir string
	cacheDir   string
	baseURL    string
	version    string
	verify     bool
	platform   platform.Info
	downloader *Downloader
	verifier   *Verifier
	extractor  *Extractor
	logger     config.Logger
}

// Config holds configuration for the manager
type Config struct {
	// InstallDir receives the rclone executable.
	InstallDir string
	// CacheDir holds archives while an update runs (default: InstallDir/.download).
	CacheDir string
	// Platform selects the archive.
	Platform *platform.Info
	// BaseURL is the download server root (default: DefaultBaseURL).
	BaseURL string
	// Version pins a release tag such as "v1.68.2".
	Version string
	// Verify checks the archive against SHA256SUMS.
	Verify bool
	// KeyringPath requires SHA256SUMS to be signed by one of its keys.
	KeyringPath string
	// Retries is the number of extra download attempts (default: none).
	Retries int
	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
	Logger     config.Logger
}

// NewManager creates a new manager
func NewManager(cfg Config) (*Manager, error) {
	if cfg.InstallDir == "" {
		return nil, fmt.Errorf("InstallDir is required")
	}
	if cfg.Platform == nil {
		return nil, fmt.Errorf("Platform is required")
	}
	if cfg.KeyringPath != "" && !cfg.Verify {
		return nil, fmt.Errorf("KeyringPath requires Verify")
	}

	installDir, err := filepath.Abs(cfg.InstallDir)
	if err != nil {
		return nil, fmt.Errorf("resolve install dir: %w", err)
	}

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(installDir, ".download")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = config.NopLogger()
	}

	return &Manager{
		installDir: installDir,
		cacheDir:   cacheDir,
		baseURL:    baseURL,
		version:    cfg.Version,
		verify:     cfg.Verify,
		platform:   *cfg.Platform,
		downloader: NewDownloader(cfg.HTTPClient, cfg.Retries),
		verifier:   NewVerifier(cfg.KeyringPath),
		extractor:  NewExtractor(),
		logger:     logger,
	}, nil
}

// BinaryPath returns the filesystem path of the installed executable
func (m *Manager) BinaryPath() string {
	return filepath.Join(m.installDir, platform.ExecutableName(m.platform.OS))
}

// IsInstalled checks if the executable exists and is executable
func (m *Manager) IsInstalled() (bool, error) {
	info, err := os.Stat(m.BinaryPath())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat binary: %w", err)
	}

	if !info.Mode().IsRegular() {
		return false, nil
	}

	// Windows has no executable bit.
	if m.platform.OS != platform.OSWindows && info.Mode().Perm()&0111 == 0 {
		return false, nil
	}

	return true, nil
}

// Update downloads the release archive for the platform and installs the
// rclone executable from it, replacing any existing one.
func (m *Manager) Update(ctx context.Context) (*UpdateResult, error) {
	startTime := time.Now()

	lock, err := acquireUpdateLock(ctx, m.cacheDir)
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	version := m.version
	if m.verify && version == "" {
		// Checksums are published per release, so pin the current one.
		resolved, err := m.CurrentVersion(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve current version: %w", err)
		}
		version = resolved
	}

	info, err := constructDownloadInfo(m.baseURL, version, &m.platform)
	if err != nil {
		return nil, fmt.Errorf("construct download info: %w", err)
	}

	m.logger.Info("downloading rclone", "url", info.URL)

	archivePath := filepath.Join(m.cacheDir, info.ArchiveName)
	if err := m.downloader.DownloadToFile(ctx, info.URL, archivePath); err != nil {
		return nil, err
	}
	defer os.Remove(archivePath)

	verified := VerificationNone
	if m.verify {
		verified, err = m.verifyArchive(ctx, info, archivePath)
		if err != nil {
			return nil, fmt.Errorf("verify archive: %w", err)
		}
		m.logger.Debug("archive verified", "method", verified)
	}

	m.logger.Info("extracting rclone", "archive", info.ArchiveName)

	installed, err := m.extractor.ExtractExecutables(archivePath, m.installDir)
	if err != nil {
		return nil, fmt.Errorf("install from %s: %w", info.ArchiveName, err)
	}

	for _, p := range installed {
		m.logger.Info("rclone installed", "path", p)
	}

	return &UpdateResult{
		URL:       info.URL,
		Version:   version,
		Installed: installed,
		Verified:  verified,
		Duration:  time.Since(startTime),
	}, nil
}

// CurrentVersion asks the download server for the current release tag.
func (m *Manager) CurrentVersion(ctx context.Context) (string, error) {
	text, err := m.downloader.FetchText(ctx, versionURL(m.baseURL))
	if err != nil {
		return "", err
	}
	return parseVersionFile(text)
}

func (m *Manager) verifyArchive(ctx context.Context, info *DownloadInfo, archivePath string) (VerificationMethod, error) {
	sumsPath := filepath.Join(m.cacheDir, info.Version+"-SHA256SUMS")
	if err := m.downloader.DownloadToFile(ctx, info.ChecksumURL, sumsPath); err != nil {
		return VerificationNone, err
	}
	defer os.Remove(sumsPath)

	return m.verifier.VerifyArchive(archivePath, sumsPath, info.ArchiveName)
}
