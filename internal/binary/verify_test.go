package binary

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
)

const testArchiveName = "rclone-v1.68.2-linux-amd64.zip"

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func newTestEntity(t *testing.T) *openpgp.Entity {
	t.Helper()

	entity, err := openpgp.NewEntity("Release Signer", "test", "release@example.com", nil)
	if err != nil {
		t.Fatalf("failed to create entity: %v", err)
	}
	return entity
}

// clearSign wraps plaintext in a clear-signed message from entity.
func clearSign(t *testing.T, entity *openpgp.Entity, plaintext []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := clearsign.Encode(&buf, entity.PrivateKey, nil)
	if err != nil {
		t.Fatalf("failed to start clearsign: %v", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		t.Fatalf("failed to write plaintext: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to finish clearsign: %v", err)
	}
	return buf.Bytes()
}

// writeArmoredPublicKey exports the entity's public key to dir.
func writeArmoredPublicKey(t *testing.T, entity *openpgp.Entity, dir string) string {
	t.Helper()

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatalf("failed to start armor: %v", err)
	}
	if err := entity.Serialize(w); err != nil {
		t.Fatalf("failed to serialize key: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to finish armor: %v", err)
	}
	return writeFile(t, dir, "release.asc", buf.Bytes())
}

func TestVerifySHA256(t *testing.T) {
	archive := []byte("archive bytes")

	tests := []struct {
		name    string
		sums    string
		wantErr error
	}{
		{
			name: "match",
			sums: fmt.Sprintf("%s  %s\n", sha256Hex(archive), testArchiveName),
		},
		{
			name: "uppercase_hash",
			sums: fmt.Sprintf("%s  %s\n", strings.ToUpper(sha256Hex(archive)), testArchiveName),
		},
		{
			name: "binary_mode_marker",
			sums: fmt.Sprintf("%s *%s\n", sha256Hex(archive), testArchiveName),
		},
		{
			name: "other_entries",
			sums: fmt.Sprintf("%s  rclone-v1.68.2-osx-amd64.zip\n%s  %s\n", sha256Hex([]byte("x")), sha256Hex(archive), testArchiveName),
		},
		{
			name:    "mismatch",
			sums:    fmt.Sprintf("%s  %s\n", sha256Hex([]byte("tampered")), testArchiveName),
			wantErr: ErrChecksumMismatch,
		},
		{
			name:    "not_listed",
			sums:    fmt.Sprintf("%s  rclone-v1.68.2-osx-amd64.zip\n", sha256Hex(archive)),
			wantErr: ErrChecksumNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			archivePath := writeFile(t, dir, testArchiveName, archive)
			sumsPath := writeFile(t, dir, "SHA256SUMS", []byte(tt.sums))

			method, err := NewVerifier("").VerifyArchive(archivePath, sumsPath, testArchiveName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if method != VerificationNone {
					t.Errorf("method = %v, want None", method)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifyArchive() error = %v", err)
			}
			if method != VerificationSHA256 {
				t.Errorf("method = %v, want SHA256", method)
			}
		})
	}
}

func TestVerifyChecksumErrorDetails(t *testing.T) {
	dir := t.TempDir()
	archivePath := writeFile(t, dir, testArchiveName, []byte("real"))
	expected := sha256Hex([]byte("other"))
	sumsPath := writeFile(t, dir, "SHA256SUMS", []byte(expected+"  "+testArchiveName+"\n"))

	_, err := NewVerifier("").VerifyArchive(archivePath, sumsPath, testArchiveName)

	var checksumErr *ChecksumError
	if !errors.As(err, &checksumErr) {
		t.Fatalf("expected *ChecksumError, got %v", err)
	}
	if checksumErr.Expected != expected {
		t.Errorf("Expected = %s, want %s", checksumErr.Expected, expected)
	}
	if checksumErr.Got != sha256Hex([]byte("real")) {
		t.Errorf("Got = %s", checksumErr.Got)
	}
	if checksumErr.Filename != testArchiveName {
		t.Errorf("Filename = %s", checksumErr.Filename)
	}
}

func TestVerifyGPG(t *testing.T) {
	entity := newTestEntity(t)
	archive := []byte("archive bytes")
	sums := []byte(fmt.Sprintf("%s  %s\n", sha256Hex(archive), testArchiveName))

	t.Run("signed_and_trusted", func(t *testing.T) {
		dir := t.TempDir()
		archivePath := writeFile(t, dir, testArchiveName, archive)
		sumsPath := writeFile(t, dir, "SHA256SUMS", clearSign(t, entity, sums))
		keyring := writeArmoredPublicKey(t, entity, dir)

		method, err := NewVerifier(keyring).VerifyArchive(archivePath, sumsPath, testArchiveName)
		if err != nil {
			t.Fatalf("VerifyArchive() error = %v", err)
		}
		if method != VerificationGPG {
			t.Errorf("method = %v, want GPG", method)
		}
	})

	t.Run("signed_without_keyring_falls_back_to_sha256", func(t *testing.T) {
		dir := t.TempDir()
		archivePath := writeFile(t, dir, testArchiveName, archive)
		sumsPath := writeFile(t, dir, "SHA256SUMS", clearSign(t, entity, sums))

		method, err := NewVerifier("").VerifyArchive(archivePath, sumsPath, testArchiveName)
		if err != nil {
			t.Fatalf("VerifyArchive() error = %v", err)
		}
		if method != VerificationSHA256 {
			t.Errorf("method = %v, want SHA256", method)
		}
	})

	t.Run("untrusted_signer", func(t *testing.T) {
		dir := t.TempDir()
		archivePath := writeFile(t, dir, testArchiveName, archive)
		sumsPath := writeFile(t, dir, "SHA256SUMS", clearSign(t, newTestEntity(t), sums))
		keyring := writeArmoredPublicKey(t, entity, dir)

		_, err := NewVerifier(keyring).VerifyArchive(archivePath, sumsPath, testArchiveName)
		if !errors.Is(err, ErrSignature) {
			t.Errorf("expected ErrSignature, got %v", err)
		}
	})

	t.Run("unsigned_with_keyring", func(t *testing.T) {
		dir := t.TempDir()
		archivePath := writeFile(t, dir, testArchiveName, archive)
		sumsPath := writeFile(t, dir, "SHA256SUMS", sums)
		keyring := writeArmoredPublicKey(t, entity, dir)

		_, err := NewVerifier(keyring).VerifyArchive(archivePath, sumsPath, testArchiveName)
		if !errors.Is(err, ErrSignature) {
			t.Errorf("expected ErrSignature, got %v", err)
		}
	})

	t.Run("signed_but_tampered_archive", func(t *testing.T) {
		dir := t.TempDir()
		archivePath := writeFile(t, dir, testArchiveName, []byte("tampered"))
		sumsPath := writeFile(t, dir, "SHA256SUMS", clearSign(t, entity, sums))
		keyring := writeArmoredPublicKey(t, entity, dir)

		_, err := NewVerifier(keyring).VerifyArchive(archivePath, sumsPath, testArchiveName)
		if !errors.Is(err, ErrChecksumMismatch) {
			t.Errorf("expected ErrChecksumMismatch, got %v", err)
		}
	})
}

func TestLoadKeyring(t *testing.T) {
	dir := t.TempDir()

	t.Run("armored", func(t *testing.T) {
		keyring, err := loadKeyring(writeArmoredPublicKey(t, newTestEntity(t), dir))
		if err != nil {
			t.Fatalf("loadKeyring() error = %v", err)
		}
		if len(keyring) != 1 {
			t.Errorf("len(keyring) = %d, want 1", len(keyring))
		}
	})

	t.Run("binary", func(t *testing.T) {
		var buf bytes.Buffer
		if err := newTestEntity(t).Serialize(&buf); err != nil {
			t.Fatal(err)
		}
		keyring, err := loadKeyring(writeFile(t, dir, "release.gpg", buf.Bytes()))
		if err != nil {
			t.Fatalf("loadKeyring() error = %v", err)
		}
		if len(keyring) != 1 {
			t.Errorf("len(keyring) = %d, want 1", len(keyring))
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := loadKeyring(filepath.Join(dir, "missing.asc")); err == nil {
			t.Error("expected error for missing keyring")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := loadKeyring(writeFile(t, dir, "garbage.asc", []byte("not a key"))); err == nil {
			t.Error("expected error for invalid keyring")
		}
	})
}

func TestFindChecksum(t *testing.T) {
	sums := []byte("abc123  rclone-v1.68.2-linux-amd64.zip\n\nmalformed\ndef456  dir/rclone-v1.68.2-osx-amd64.zip\n")

	tests := []struct {
		filename string
		want     string
		wantErr  bool
	}{
		{filename: "rclone-v1.68.2-linux-amd64.zip", want: "abc123"},
		{filename: "rclone-v1.68.2-osx-amd64.zip", want: "def456"},
		{filename: "rclone-v1.68.2-windows-amd64.zip", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := findChecksum(sums, tt.filename)
			if (err != nil) != tt.wantErr {
				t.Fatalf("findChecksum() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("findChecksum() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerificationMethodString(t *testing.T) {
	tests := map[VerificationMethod]string{
		VerificationNone:      "None",
		VerificationSHA256:    "SHA256",
		VerificationGPG:       "GPG",
		VerificationMethod(9): "Unknown",
	}
	for method, want := range tests {
		if got := method.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(method), got, want)
		}
	}
}
