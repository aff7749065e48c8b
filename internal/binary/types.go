package binary

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNetwork matches every *NetworkError.
	ErrNetwork = errors.New("network error")

	// ErrBinaryNotFound indicates the archive held no rclone executable.
	ErrBinaryNotFound = errors.New("rclone executable not found in archive")

	// ErrChecksumMismatch indicates the archive hash differs from SHA256SUMS.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrChecksumNotFound indicates SHA256SUMS has no line for the archive.
	ErrChecksumNotFound = errors.New("archive not listed in checksums")

	// ErrSignature indicates the checksum file signature could not be verified.
	ErrSignature = errors.New("signature verification failed")
)

// NetworkError reports a failed fetch.
type NetworkError struct {
	URL        string
	StatusCode int   // set for non-2xx responses
	Err        error // set for transport failures
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("download %s: unexpected status code: %d", e.URL, e.StatusCode)
}

// Unwrap returns the transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is reports ErrNetwork as a match.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// ChecksumError provides details about a checksum verification failure.
type ChecksumError struct {
	Filename string
	Expected string
	Got      string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum verification failed for %s\nexpected: %s\ngot:      %s", e.Filename, e.Expected, e.Got)
}

// Unwrap returns ErrChecksumMismatch so callers can use errors.Is.
func (e *ChecksumError) Unwrap() error { return ErrChecksumMismatch }

// VerificationMethod indicates how an archive was verified
type VerificationMethod int

const (
	// VerificationNone indicates the archive was installed unchecked
	VerificationNone VerificationMethod = iota
	// VerificationSHA256 indicates the archive matched SHA256SUMS
	VerificationSHA256
	// VerificationGPG indicates SHA256SUMS was signed by a trusted key and matched
	VerificationGPG
)

// String returns the string representation of the verification method
func (v VerificationMethod) String() string {
	switch v {
	case VerificationGPG:
		return "GPG"
	case VerificationSHA256:
		return "SHA256"
	case VerificationNone:
		return "None"
	default:
		return "Unknown"
	}
}

// DownloadInfo contains metadata needed to download an archive
type DownloadInfo struct {
	Version     string // pinned release, empty for current
	OS          string // rclone OS name
	Arch        string // rclone arch name
	ArchiveName string // e.g. rclone-current-osx-amd64.zip
	URL         string
	ChecksumURL string // empty for the unpinned current archive
}

// UpdateResult describes a completed update.
type UpdateResult struct {
	URL       string
	Version   string
	Installed []string // absolute paths of the extracted executables
	Verified  VerificationMethod
	Duration  time.Duration
}
