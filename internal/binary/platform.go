package binary

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/config"
	"github.com/ZebulonRouseFrantzich/rclonewrap/internal/platform"
	"golang.org/x/mod/semver"
)

// DefaultBaseURL is the rclone download server.
const DefaultBaseURL = config.DefaultBaseURL

// constructDownloadInfo builds the archive URLs for a platform.
//
// Current release: {base}/rclone-current-{os}-{arch}.zip
// Pinned release:  {base}/{v}/rclone-{v}-{os}-{arch}.zip and {base}/{v}/SHA256SUMS
func constructDownloadInfo(baseURL, version string, info *platform.Info) (*DownloadInfo, error) {
	if info == nil {
		return nil, fmt.Errorf("platform info is required")
	}

	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	d := &DownloadInfo{
		Version: version,
		OS:      info.OS,
		Arch:    info.Arch,
	}

	if version == "" {
		d.ArchiveName = fmt.Sprintf("rclone-current-%s-%s.zip", info.OS, info.Arch)
		d.URL = fmt.Sprintf("%s/%s", base, d.ArchiveName)
		return d, nil
	}

	if !semver.IsValid(version) {
		return nil, fmt.Errorf("invalid version %q: expected a release tag such as v1.68.2", version)
	}

	d.ArchiveName = fmt.Sprintf("rclone-%s-%s-%s.zip", version, info.OS, info.Arch)
	d.URL = fmt.Sprintf("%s/%s/%s", base, version, d.ArchiveName)
	d.ChecksumURL = fmt.Sprintf("%s/%s/SHA256SUMS", base, version)

	return d, nil
}

// versionURL is the plain-text file naming the current release.
func versionURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return base + "/version.txt"
}

// parseVersionFile extracts the tag from "rclone v1.68.2".
func parseVersionFile(content string) (string, error) {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty version file")
	}

	version := fields[len(fields)-1]
	if !semver.IsValid(version) {
		return "", fmt.Errorf("unexpected version file content %q", strings.TrimSpace(content))
	}
	return version, nil
}
