// Package platform resolves the running host into rclone's release naming
// vocabulary and exposes it to the Lua configuration.
//
// Resolution is a pure table lookup: identifiers the table does not know
// pass through unchanged, so a new GOOS or GOARCH still produces a usable
// (if possibly unpublished) download name. Linux hosts are additionally
// enriched with distribution details from gopsutil, with graceful fallback
// when detection fails.
package platform

import "context"

// Linux distribution family constants.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// Normalized OS names used by rclone release archives.
const (
	OSMacOS   = "osx"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSSolaris = "solaris"
)

// Info contains the resolved platform identity.
type Info struct {
	OS       string // rclone OS name: "osx", "linux", "windows", ...
	Arch     string // rclone arch name: "amd64", "386", "arm64", ...
	OSRaw    string // identifier the OS was resolved from
	ArchRaw  string // identifier the arch was resolved from
	Platform string // distro ID (Linux only, e.g., "ubuntu")
	Family   string // canonical family (e.g., "debian")
	Version  string // distro version (Linux only, e.g., "22.04")
}

// Distro contains Linux distribution information.
type Distro struct {
	ID      string
	Family  string
	Version string
}

// GetDistro returns distro information if this is a Linux platform.
// Returns nil for non-Linux platforms or if distro detection failed.
func (i *Info) GetDistro() *Distro {
	if i.OS != OSLinux || i.Platform == "" {
		return nil
	}
	return &Distro{
		ID:      i.Platform,
		Family:  i.Family,
		Version: i.Version,
	}
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == OSWindows
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == OSMacOS
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == OSLinux
}

// ExecutableName returns the file name of the rclone executable on this platform.
func (i *Info) ExecutableName() string {
	return ExecutableName(i.OS)
}

// String renders the identity the way release archives name it.
func (i *Info) String() string {
	return i.OS + "-" + i.Arch
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
