package gateways

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/ochairo/hashwatch/internal/domain/entities"
	"github.com/ochairo/hashwatch/internal/domain/interfaces/gateways"
)

type recordingProgress struct {
	mu       sync.Mutex
	name     string
	total    int64
	written  int
	finished bool
}

func (r *recordingProgress) Track(name string, total int64) gateways.ProgressTracker {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name = name
	r.total = total
	return r
}

func (r *recordingProgress) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.written += len(p)
	return len(p), nil
}

func (r *recordingProgress) Finish() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = true
	return nil
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "installer", url: "https://kicad-downloads.s3.cern.ch/windows/nightly/kicad-r1.abc-x86_64.exe", want: filepath.Join("downloads", "kicad-r1.abc-x86_64.exe")},
		{name: "query is ignored", url: "https://example.com/files/app.msi?token=x", want: filepath.Join("downloads", "app.msi")},
		{name: "no path", url: "https://example.com", wantErr: true},
		{name: "trailing slash", url: "https://example.com/", wantErr: true},
		{name: "invalid url", url: "://bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ArtifactPath(tt.url, "downloads")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ArtifactPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ArtifactPath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDownloader_Download(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789abcdef"), 10_000)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sized/app.exe":
			w.Header().Set("Content-Length", strconv.Itoa(len(content)))
			_, _ = w.Write(content)
		case "/chunked/app.exe":
			// Flushing before the body forces chunked encoding (no Content-Length)
			w.WriteHeader(http.StatusOK)
			w.(http.Flusher).Flush()
			_, _ = w.Write(content)
		case "/empty/app.exe":
			w.Header().Set("Content-Length", "0")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	t.Run("declared length", func(t *testing.T) {
		progress := &recordingProgress{}
		d := NewDownloader(DownloaderConfig{Progress: progress, ChunkSize: 4096})
		destDir := filepath.Join(t.TempDir(), "downloads")

		artifact, err := d.Download(context.Background(), server.URL+"/sized/app.exe", destDir)
		if err != nil {
			t.Fatalf("Download() error = %v", err)
		}

		if artifact.Path != filepath.Join(destDir, "app.exe") {
			t.Errorf("Path = %s", artifact.Path)
		}
		if artifact.Size != int64(len(content)) || artifact.DeclaredSize != int64(len(content)) {
			t.Errorf("Size = %d, DeclaredSize = %d, want %d", artifact.Size, artifact.DeclaredSize, len(content))
		}

		got, err := os.ReadFile(artifact.Path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Error("downloaded content differs from served content")
		}

		if progress.name != "app.exe" || progress.total != int64(len(content)) {
			t.Errorf("progress tracked %s/%d", progress.name, progress.total)
		}
		if progress.written != len(content) || !progress.finished {
			t.Errorf("progress written = %d finished = %v", progress.written, progress.finished)
		}
	})

	t.Run("unknown length", func(t *testing.T) {
		progress := &recordingProgress{}
		d := NewDownloader(DownloaderConfig{Progress: progress})

		artifact, err := d.Download(context.Background(), server.URL+"/chunked/app.exe", t.TempDir())
		if err != nil {
			t.Fatalf("Download() error = %v", err)
		}
		if artifact.DeclaredSize != -1 {
			t.Errorf("DeclaredSize = %d, want -1", artifact.DeclaredSize)
		}
		if progress.total != -1 {
			t.Errorf("progress total = %d, want -1", progress.total)
		}
		if artifact.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", artifact.Size, len(content))
		}
	})

	t.Run("empty body", func(t *testing.T) {
		d := NewDownloader(DownloaderConfig{})

		artifact, err := d.Download(context.Background(), server.URL+"/empty/app.exe", t.TempDir())
		if err != nil {
			t.Fatalf("Download() error = %v", err)
		}
		info, err := os.Stat(artifact.Path)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if info.Size() != 0 {
			t.Errorf("file size = %d, want 0", info.Size())
		}
	})

	t.Run("not found", func(t *testing.T) {
		d := NewDownloader(DownloaderConfig{})
		destDir := t.TempDir()

		_, err := d.Download(context.Background(), server.URL+"/missing/app.exe", destDir)
		if !errors.Is(err, entities.ErrFetchFailed) {
			t.Fatalf("Download() error = %v, want ErrFetchFailed", err)
		}
		assertEmptyDir(t, destDir)
	})
}

func TestDownloader_Truncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write([]byte("only a few bytes"))
	}))
	defer server.Close()

	destDir := t.TempDir()
	_, err := NewDownloader(DownloaderConfig{}).Download(context.Background(), server.URL+"/app.exe", destDir)
	if !errors.Is(err, entities.ErrFetchFailed) {
		t.Fatalf("Download() error = %v, want ErrFetchFailed", err)
	}
	assertEmptyDir(t, destDir)
}

func TestDownloader_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDownloader(DownloaderConfig{}).Download(ctx, server.URL+"/app.exe", t.TempDir())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Download() error = %v, want context.Canceled", err)
	}
	if !errors.Is(err, entities.ErrFetchFailed) {
		t.Errorf("Download() error = %v, want ErrFetchFailed", err)
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files in %s, found %d", dir, len(entries))
	}
}

func TestDownloader_Release(t *testing.T) {
	d := NewDownloader(DownloaderConfig{})
	path := filepath.Join(t.TempDir(), "app.exe")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	artifact := &entities.DownloadedArtifact{Path: path}

	if err := d.Release(artifact); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("artifact still exists: %v", err)
	}

	// Releasing twice is fine
	if err := d.Release(artifact); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
	if err := d.Release(nil); err != nil {
		t.Errorf("Release(nil) error = %v", err)
	}
}
