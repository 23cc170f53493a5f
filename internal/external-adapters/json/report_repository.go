// Package json persists run reports as JSON documents.
package json

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"

	"github.com/ochairo/hashwatch/internal/domain/entities"
	"github.com/ochairo/hashwatch/internal/domain/interfaces/gateways"
)

// SignatureExt is appended to the report path for its detached signature
const SignatureExt = ".asc"

// ReportRepository implements repositories.ReportRepository with one JSON file per package
type ReportRepository struct {
	dir    string
	signer gateways.ReportSigner
}

// NewReportRepository creates a repository rooted at dir (e.g. "checksums").
// When signer is non-nil every saved report gets a detached signature.
func NewReportRepository(dir string, signer gateways.ReportSigner) *ReportRepository {
	return &ReportRepository{
		dir:    dir,
		signer: signer,
	}
}

// ReportPath returns the report location for pkg
func (r *ReportRepository) ReportPath(pkg string) string {
	return filepath.Join(r.dir, pkg+".json")
}

// SaveReport overwrites the report for pkg atomically. Failures wrap entities.ErrPersistence.
func (r *ReportRepository) SaveReport(ctx context.Context, pkg string, report *entities.RunReport) (string, error) {
	if report == nil {
		return "", fmt.Errorf("%w: no report", entities.ErrPersistence)
	}

	doc := *report
	if doc.Results == nil {
		doc.Results = []entities.VariantResult{}
	}

	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode report: %w", entities.ErrPersistence, err)
	}
	data = append(data, '\n')

	var sig bytes.Buffer
	if r.signer != nil {
		if err := r.signer.Sign(ctx, bytes.NewReader(data), &sig); err != nil {
			return "", fmt.Errorf("%w: failed to sign report: %w", entities.ErrPersistence, err)
		}
	}

	if err := os.MkdirAll(r.dir, 0750); err != nil {
		return "", fmt.Errorf("%w: failed to create report directory: %w", entities.ErrPersistence, err)
	}

	path := r.ReportPath(pkg)
	if err := atomicwriter.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: failed to write report: %w", entities.ErrPersistence, err)
	}

	sigPath := path + SignatureExt
	if r.signer == nil {
		// A signature from an earlier run no longer matches the new report
		if err := os.Remove(sigPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: failed to remove stale signature: %w", entities.ErrPersistence, err)
		}
		return path, nil
	}

	if err := atomicwriter.WriteFile(sigPath, sig.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("%w: failed to write signature: %w", entities.ErrPersistence, err)
	}

	return path, nil
}

// LoadReport reads the stored report for pkg
func (r *ReportRepository) LoadReport(_ context.Context, pkg string) (*entities.RunReport, error) {
	path := r.ReportPath(pkg)

	//nolint:gosec // G304: path is built from the configured report directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no report for %s in %s: %w", pkg, r.dir, err)
		}
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var report entities.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}

	return &report, nil
}
