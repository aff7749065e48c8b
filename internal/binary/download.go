package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 5 * time.Minute
	// DefaultRetries is zero: a failed download is reported, not retried
	DefaultRetries = 0
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "rclonewrap/1.0"

	// maxTextBytes bounds small text downloads such as version.txt.
	maxTextBytes = 1 << 20
)

// Downloader handles HTTP downloads
type Downloader struct {
	client    *http.Client
	userAgent string
	retries   int
}

// NewDownloader creates a new downloader. A nil client gets a default
// client with DefaultTimeout.
func NewDownloader(client *http.Client, retries int) *Downloader {
	if client == nil {
		client = &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		}
	}
	if retries < 0 {
		retries = 0
	}

	return &Downloader{
		client:    client,
		userAgent: DefaultUserAgent,
		retries:   retries,
	}
}

// DownloadToFile downloads a URL to a specific file path
func (d *Downloader) DownloadToFile(ctx context.Context, url, destPath string) error {
	return d.withRetries(ctx, func() error {
		return d.downloadOnce(ctx, url, destPath)
	})
}

// FetchText downloads a small text document.
func (d *Downloader) FetchText(ctx context.Context, url string) (string, error) {
	var text string
	err := d.withRetries(ctx, func() error {
		body, err := d.get(ctx, url)
		if err != nil {
			return err
		}
		defer body.Close()

		data, err := io.ReadAll(io.LimitReader(body, maxTextBytes))
		if err != nil {
			return &NetworkError{URL: url, Err: err}
		}
		text = string(data)
		return nil
	})
	return text, err
}

// withRetries runs fn up to 1+retries times with exponential backoff.
// Client errors (4xx) are not retried.
func (d *Downloader) withRetries(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= d.retries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if ne, ok := err.(*NetworkError); ok && ne.StatusCode >= 400 && ne.StatusCode < 500 {
			break
		}
	}

	return lastErr
}

// get issues a GET request and returns the body of a 2xx response.
func (d *Downloader) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}

// downloadOnce performs a single download attempt
func (d *Downloader) downloadOnce(ctx context.Context, url, destPath string) error {
	body, err := d.get(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, body); err != nil {
		return &NetworkError{URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return nil
}
