// Package binary downloads and installs the rclone executable.
//
// # Update flow
//
//  1. The download URL is built from the resolved platform identity:
//     {base}/rclone-current-{os}-{arch}.zip, or the versioned archive
//     when a release is pinned.
//  2. The archive is fetched over HTTP. Transport failures and non-2xx
//     responses are returned as *NetworkError. Nothing is retried unless
//     the caller configures retries.
//  3. Optionally the archive is checked against the release SHA256SUMS.
//     When a keyring is configured, the clear-signed checksum file must
//     carry a valid PGP signature from it.
//  4. Every entry named rclone or rclone.exe is written to the install
//     directory, replacing any existing file, with mode 0755. Other
//     entries (docs, man pages, licenses) are skipped. An archive without
//     such an entry fails with ErrBinaryNotFound.
//
// # Usage
//
//	mgr, err := binary.NewManager(binary.Config{
//	    InstallDir: "/opt/rclonewrap/bin",
//	    Platform:   info,
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := mgr.Update(ctx)
//
// Running Update twice against an unchanged release installs identical
// bytes. Concurrent updates sharing a download directory are rejected
// with ErrUpdateInProgress; nothing protects the executable from a
// concurrent launch.
package binary
