package binary

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
)

// Verifier checks downloaded archives against a release SHA256SUMS file.
type Verifier struct {
	keyringPath string
}

// NewVerifier creates a verifier. With a keyring path, checksum files
// must be clear-signed by a key from that keyring.
func NewVerifier(keyringPath string) *Verifier {
	return &Verifier{keyringPath: keyringPath}
}

// VerifyArchive compares the SHA256 of archivePath with the entry for
// archiveName in the checksum file at sumsPath.
func (v *Verifier) VerifyArchive(archivePath, sumsPath, archiveName string) (VerificationMethod, error) {
	data, err := os.ReadFile(sumsPath)
	if err != nil {
		return VerificationNone, fmt.Errorf("read checksum file: %w", err)
	}

	method := VerificationSHA256
	sums := data

	block, _ := clearsign.Decode(data)
	switch {
	case block != nil && v.keyringPath != "":
		if err := v.verifySignature(block); err != nil {
			return VerificationNone, err
		}
		method = VerificationGPG
		sums = block.Plaintext
	case block != nil:
		sums = block.Plaintext
	case v.keyringPath != "":
		return VerificationNone, fmt.Errorf("%w: checksum file is not signed", ErrSignature)
	}

	expected, err := findChecksum(sums, archiveName)
	if err != nil {
		return VerificationNone, err
	}

	actual, err := calculateSHA256(archivePath)
	if err != nil {
		return VerificationNone, fmt.Errorf("calculate checksum: %w", err)
	}

	if !strings.EqualFold(actual, expected) {
		return VerificationNone, &ChecksumError{
			Filename: archiveName,
			Expected: strings.ToLower(expected),
			Got:      actual,
		}
	}

	return method, nil
}

// verifySignature checks a clear-signed block against the keyring.
func (v *Verifier) verifySignature(block *clearsign.Block) error {
	keyring, err := loadKeyring(v.keyringPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignature, err)
	}

	if _, err := openpgp.CheckDetachedSignature(keyring, bytes.NewReader(block.Bytes), block.ArmoredSignature.Body, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrSignature, err)
	}
	return nil
}

// loadKeyring reads an armored or binary PGP keyring.
func loadKeyring(path string) (openpgp.EntityList, error) {
	keyringFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer keyringFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyringFile)
	if err != nil {
		if _, seekErr := keyringFile.Seek(0, io.SeekStart); seekErr != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
		keyring, err = openpgp.ReadKeyRing(keyringFile)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}

	return keyring, nil
}

// calculateSHA256 calculates the SHA256 checksum of a file
func calculateSHA256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// findChecksum finds the checksum for a file name in sha256sum output.
// Format: "abc123def456  rclone-v1.68.2-linux-amd64.zip"
func findChecksum(sums []byte, filename string) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(sums))
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		// sha256sum marks binary mode with a leading '*'.
		name := strings.TrimPrefix(parts[1], "*")
		if name == filename || filepath.Base(name) == filename {
			return parts[0], nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksum file: %w", err)
	}

	return "", fmt.Errorf("%w: %s", ErrChecksumNotFound, filename)
}
