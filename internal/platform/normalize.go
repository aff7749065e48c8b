package platform

import "strings"

// osNames maps runtime OS identifiers to rclone release names.
// Identifiers missing from the table pass through unchanged.
var osNames = map[string]string{
	"darwin":  OSMacOS,
	"freebsd": "freebsd",
	"linux":   OSLinux,
	"openbsd": "openbsd",
	"sunos":   OSSolaris,
	"win32":   OSWindows,
}

// archNames maps runtime CPU identifiers to rclone release names.
var archNames = map[string]string{
	"arm":    "arm",
	"arm64":  "arm64",
	"mips":   "mips",
	"mipsel": "mipsel",
	"x32":    "386",
	"x64":    "amd64",
}

// familyMap maps distribution names to their canonical family names.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian,
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

// ResolveOS maps a raw OS identifier to rclone's naming.
func ResolveOS(raw string) string {
	if name, ok := osNames[raw]; ok {
		return name
	}
	return raw
}

// ResolveArch maps a raw CPU architecture identifier to rclone's naming.
func ResolveArch(raw string) string {
	if name, ok := archNames[raw]; ok {
		return name
	}
	return raw
}

// Resolve returns the normalized identity for a raw OS/arch pair.
// It never fails: unknown identifiers are returned verbatim.
func Resolve(rawOS, rawArch string) Info {
	return Info{
		OS:      ResolveOS(rawOS),
		Arch:    ResolveArch(rawArch),
		OSRaw:   rawOS,
		ArchRaw: rawArch,
	}
}

// ExecutableName returns "rclone.exe" for windows and "rclone" otherwise.
func ExecutableName(osName string) string {
	if osName == OSWindows {
		return "rclone.exe"
	}
	return "rclone"
}

// normalizePlatform converts platform IDs to lowercase for consistency.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily maps distribution family strings to canonical family names.
func mapFamily(family string) string {
	normalized := strings.ToLower(strings.TrimSpace(family))
	if canonical, ok := familyMap[normalized]; ok {
		return canonical
	}
	return FamilyUnknown
}
