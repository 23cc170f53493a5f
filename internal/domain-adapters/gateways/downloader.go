package gateways

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/docker/go-units"

	"github.com/ochairo/hashwatch/internal/domain/entities"
	"github.com/ochairo/hashwatch/internal/domain/interfaces"
	"github.com/ochairo/hashwatch/internal/domain/interfaces/gateways"
	"github.com/ochairo/hashwatch/internal/domain/services"
)

// Long timeout for large installers
const defaultDownloadTimeout = 30 * time.Minute

// Downloader streams artifacts to local storage
type Downloader struct {
	httpClient *http.Client
	progress   gateways.ProgressReporter
	logger     interfaces.Logger
	chunkSize  int
}

// DownloaderConfig holds optional downloader settings
type DownloaderConfig struct {
	Timeout   time.Duration
	ChunkSize int
	Progress  gateways.ProgressReporter
	Logger    interfaces.Logger
}

// NewDownloader creates a new downloader
func NewDownloader(config DownloaderConfig) *Downloader {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultDownloadTimeout
	}
	chunkSize := config.ChunkSize
	if chunkSize <= 0 {
		chunkSize = services.DefaultChunkSize
	}
	progress := config.Progress
	if progress == nil {
		progress = gateways.NoOpProgress{}
	}
	logger := config.Logger
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &Downloader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		progress:  progress,
		logger:    logger,
		chunkSize: chunkSize,
	}
}

// ArtifactPath returns where rawURL is stored inside destDir: the URL's last path segment
func ArtifactPath(rawURL, destDir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid download URL %q: %w", rawURL, err)
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("download URL %q has no file name", rawURL)
	}

	return filepath.Join(destDir, name), nil
}

// Download fetches rawURL into destDir. Every failure wraps entities.ErrFetchFailed
// and leaves no file behind; on success the caller owns the returned file.
func (d *Downloader) Download(ctx context.Context, rawURL, destDir string) (*entities.DownloadedArtifact, error) {
	dest, err := ArtifactPath(rawURL, destDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", entities.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: HTTP request failed: %w", entities.ErrFetchFailed, err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("%w: %s returned HTTP %s", entities.ErrFetchFailed, rawURL, resp.Status)
	}

	if err := os.MkdirAll(destDir, 0750); err != nil {
		return nil, fmt.Errorf("%w: failed to create download directory: %w", entities.ErrFetchFailed, err)
	}

	d.logger.Info("Downloading artifact",
		interfaces.F("url", rawURL),
		interfaces.F("path", dest),
		interfaces.F("size", describeSize(resp.ContentLength)),
	)

	written, err := d.writeFile(resp.Body, dest, resp.ContentLength)
	if err != nil {
		_ = os.Remove(dest)
		return nil, fmt.Errorf("%w: %w", entities.ErrFetchFailed, err)
	}

	if resp.ContentLength >= 0 && written != resp.ContentLength {
		_ = os.Remove(dest)
		return nil, fmt.Errorf("%w: %w: got %d of %d bytes",
			entities.ErrFetchFailed, entities.ErrTruncatedArtifact, written, resp.ContentLength)
	}

	d.logger.Debug("Downloaded artifact",
		interfaces.F("path", dest),
		interfaces.F("size", units.HumanSize(float64(written))),
	)

	return &entities.DownloadedArtifact{
		Path:         dest,
		Size:         written,
		DeclaredSize: resp.ContentLength,
	}, nil
}

// Release removes a downloaded artifact from local storage
func (d *Downloader) Release(artifact *entities.DownloadedArtifact) error {
	if artifact == nil || artifact.Path == "" {
		return nil
	}
	if err := os.Remove(artifact.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove artifact: %w", err)
	}
	return nil
}

// writeFile copies body to dest in fixed-size chunks, reporting progress
func (d *Downloader) writeFile(body io.Reader, dest string, declared int64) (int64, error) {
	//nolint:gosec // G304: dest is derived from the download URL inside the downloads directory
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	tracker := d.progress.Track(filepath.Base(dest), declared)

	var written int64
	buf := make([]byte, d.chunkSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := out.Write(buf[:n]); err != nil {
				_ = tracker.Finish()
				_ = out.Close()
				return written, fmt.Errorf("failed to write file: %w", err)
			}
			_, _ = tracker.Write(buf[:n])
			written += int64(n)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = tracker.Finish()
			_ = out.Close()
			return written, fmt.Errorf("download interrupted after %d bytes: %w", written, readErr)
		}
	}

	_ = tracker.Finish()
	if err := out.Close(); err != nil {
		return written, fmt.Errorf("failed to close file: %w", err)
	}

	return written, nil
}

func describeSize(n int64) string {
	if n < 0 {
		return "unknown"
	}
	return units.HumanSize(float64(n))
}
