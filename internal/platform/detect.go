package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector for the running process.
type RealDetector struct {
	goos   string
	goarch string
	// distro looks up Linux distribution details; nil disables the lookup.
	distro func(ctx context.Context) (platform, family, version string, err error)
}

// NewDetector creates a detector for the current host.
func NewDetector() Detector {
	return &RealDetector{
		goos:   runtime.GOOS,
		goarch: runtime.GOARCH,
		distro: host.PlatformInformationWithContext,
	}
}

// Detect resolves runtime.GOOS and runtime.GOARCH through Resolve.
//
// On Linux the distribution is looked up with gopsutil. A failed lookup
// leaves the distro fields empty; only context cancellation is reported
// as an error.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := Resolve(d.goos, d.goarch)

	if info.OS != OSLinux || d.distro == nil {
		return &info, nil
	}

	platform, family, version, err := d.distro(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return &info, nil
	}

	platform = normalizePlatform(platform)
	if platform != "" {
		info.Platform = platform
		info.Family = mapFamily(family)
		info.Version = normalizePlatform(version)
	}

	return &info, nil
}

// StaticDetector returns a fixed identity. It is used when the platform is
// forced through configuration and in tests.
type StaticDetector struct {
	Info Info
}

// Detect returns a copy of the configured identity.
func (s StaticDetector) Detect(ctx context.Context) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info := s.Info
	return &info, nil
}
