package binary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDownloaderDownloadToFile(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    bool
	}{
		{
			name:       "successful_download",
			statusCode: http.StatusOK,
			body:       "test archive content",
		},
		{
			name:       "404_not_found",
			statusCode: http.StatusNotFound,
			body:       "not found",
			wantErr:    true,
		},
		{
			name:       "500_server_error",
			statusCode: http.StatusInternalServerError,
			body:       "server error",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("User-Agent") != DefaultUserAgent {
					t.Errorf("unexpected User-Agent: %s", r.Header.Get("User-Agent"))
				}
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			destPath := filepath.Join(t.TempDir(), "nested", "archive.zip")
			err := NewDownloader(nil, 0).DownloadToFile(context.Background(), server.URL, destPath)

			if (err != nil) != tt.wantErr {
				t.Fatalf("DownloadToFile() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if !errors.Is(err, ErrNetwork) {
					t.Errorf("expected ErrNetwork, got %v", err)
				}
				var netErr *NetworkError
				if !errors.As(err, &netErr) || netErr.StatusCode != tt.statusCode {
					t.Errorf("expected NetworkError with status %d, got %v", tt.statusCode, err)
				}
				if _, statErr := os.Stat(destPath); !os.IsNotExist(statErr) {
					t.Error("destination should not exist after failed download")
				}
				if _, statErr := os.Stat(destPath + ".tmp"); !os.IsNotExist(statErr) {
					t.Error("temp file should be cleaned up")
				}
				return
			}

			content, err := os.ReadFile(destPath)
			if err != nil {
				t.Fatalf("read downloaded file: %v", err)
			}
			if string(content) != tt.body {
				t.Errorf("content = %q, want %q", content, tt.body)
			}
		})
	}
}

func TestDownloaderTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewDownloader(nil, 0).DownloadToFile(context.Background(), url, filepath.Join(t.TempDir(), "a.zip"))
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %T", err)
	}
	if netErr.Err == nil || netErr.StatusCode != 0 {
		t.Errorf("expected transport error without status, got %+v", netErr)
	}
}

func TestDownloaderNoRetryByDefault(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := NewDownloader(nil, DefaultRetries).DownloadToFile(context.Background(), server.URL, filepath.Join(t.TempDir(), "a.zip"))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestDownloaderRetries(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "a.zip")
	if err := NewDownloader(nil, 1).DownloadToFile(context.Background(), server.URL, destPath); err != nil {
		t.Fatalf("DownloadToFile() error = %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
}

func TestDownloaderClientErrorNotRetried(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := NewDownloader(nil, 3).DownloadToFile(context.Background(), server.URL, filepath.Join(t.TempDir(), "a.zip"))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestDownloaderContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := NewDownloader(nil, 0).DownloadToFile(ctx, server.URL, filepath.Join(t.TempDir(), "a.zip"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestDownloaderFetchText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("rclone v1.68.2\n"))
	}))
	defer server.Close()

	text, err := NewDownloader(nil, 0).FetchText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchText() error = %v", err)
	}
	if text != "rclone v1.68.2\n" {
		t.Errorf("FetchText() = %q", text)
	}
}
