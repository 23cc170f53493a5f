// Package gateways implements the domain gateways over HTTP and the local filesystem.
package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ochairo/hashwatch/internal/domain/entities"
	"github.com/ochairo/hashwatch/internal/domain/services"
)

const (
	defaultVersionTimeout = 30 * time.Second
	userAgent             = "hashwatch/1.0"
	// Status pages are small HTML listings; anything bigger is not a status page
	maxVersionPageSize = 16 << 20
)

// VersionResolver scrapes build-server status pages for version tokens
type VersionResolver struct {
	httpClient *http.Client
}

// NewVersionResolver creates a resolver; a zero timeout selects the default
func NewVersionResolver(timeout time.Duration) *VersionResolver {
	if timeout <= 0 {
		timeout = defaultVersionTimeout
	}
	return &VersionResolver{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Resolve fetches the variant's status page and extracts the version token.
// Load failures wrap entities.ErrFetchFailed, pattern misses wrap entities.ErrVersionNotFound.
func (vr *VersionResolver) Resolve(ctx context.Context, spec entities.VariantSpec) (*entities.ResolvedVersion, error) {
	page, err := vr.fetchPage(ctx, spec.VersionPageURL)
	if err != nil {
		return nil, err
	}

	token, err := services.ExtractVersion(page, spec.VersionPattern)
	if err != nil {
		return nil, err
	}

	return &entities.ResolvedVersion{
		VariantName: spec.Name,
		Token:       token,
	}, nil
}

// fetchPage returns the body of url as text
func (vr *VersionResolver) fetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %w", entities.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := vr.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: HTTP request failed: %w", entities.ErrFetchFailed, err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return "", fmt.Errorf("%w: %s returned HTTP %s", entities.ErrFetchFailed, url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVersionPageSize))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %w", entities.ErrFetchFailed, err)
	}

	return string(body), nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
