package binary

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/klauspost/compress/zip"
)

// maxBinaryBytes is the upper bound on an extracted executable (500 MB).
const maxBinaryBytes = 500 << 20

// executablePattern matches the base name of the rclone executable.
var executablePattern = regexp.MustCompile(`^rclone(\.exe)?$`)

// Extractor handles archive extraction
type Extractor struct{}

// NewExtractor creates a new extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractExecutables writes every rclone executable in a zip archive to
// destDir under its base name, replacing existing files, with mode 0755.
// It returns the paths written, or ErrBinaryNotFound when nothing matched.
//
// The whole base name must be rclone or rclone.exe. A suffix match would
// also pick up entries such as git-annex-remote-rclone and install them
// over the real executable.
func (e *Extractor) ExtractExecutables(archivePath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("create dest dir: %w", err)
	}

	var installed []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}

		// Zip entry names always use forward slashes.
		name := path.Base(f.Name)
		if !executablePattern.MatchString(name) {
			continue
		}

		dest := filepath.Join(destDir, name)
		if err := extractFile(f, dest); err != nil {
			return installed, fmt.Errorf("extract %s: %w", f.Name, err)
		}
		installed = append(installed, dest)
	}

	if len(installed) == 0 {
		return nil, ErrBinaryNotFound
	}

	return installed, nil
}

// extractFile writes one entry through a temp file in the destination
// directory and renames it into place.
func extractFile(f *zip.File, dest string) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".rclone-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	n, err := io.Copy(tmp, io.LimitReader(src, maxBinaryBytes+1))
	if err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if n > maxBinaryBytes {
		tmp.Close()
		return fmt.Errorf("entry exceeds %d bytes", maxBinaryBytes)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}

	return SetExecutable(dest)
}

// SetExecutable sets executable permissions on a file
func SetExecutable(path string) error {
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}
