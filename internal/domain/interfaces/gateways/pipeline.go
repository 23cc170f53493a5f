// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"
	"io"

	"github.com/ochairo/hashwatch/internal/domain/entities"
)

// VersionResolver discovers the current version token of a variant
type VersionResolver interface {
	// Resolve fetches the variant's status page and extracts the version token
	Resolve(ctx context.Context, spec entities.VariantSpec) (*entities.ResolvedVersion, error)
}

// ArtifactDownloader streams a remote file to local storage
type ArtifactDownloader interface {
	// Download writes url into destDir; the caller owns the file and must Release it
	Download(ctx context.Context, url, destDir string) (*entities.DownloadedArtifact, error)

	// Release deletes a downloaded artifact; releasing a missing file is not an error
	Release(artifact *entities.DownloadedArtifact) error
}

// ChecksumCalculator computes a digest set over a local artifact
type ChecksumCalculator interface {
	Calculate(ctx context.Context, artifact *entities.DownloadedArtifact, algorithms []string) (entities.DigestSet, error)
}

// ReportSigner produces a detached signature over persisted report bytes
type ReportSigner interface {
	Sign(ctx context.Context, data io.Reader, sig io.Writer) error
}
