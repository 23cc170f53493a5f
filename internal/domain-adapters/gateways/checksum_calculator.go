package gateways

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/hashwatch/internal/domain/entities"
	"github.com/ochairo/hashwatch/internal/domain/services"
)

// checksumCalculator computes digest sets over local files using pure Go
type checksumCalculator struct {
	chunkSize int
}

// NewChecksumCalculator creates a calculator reading chunkSize bytes at a time
// (services.DefaultChunkSize when chunkSize <= 0)
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumCalculator(chunkSize int) *checksumCalculator {
	if chunkSize <= 0 {
		chunkSize = services.DefaultChunkSize
	}
	return &checksumCalculator{chunkSize: chunkSize}
}

// Calculate hashes the artifact once per algorithm, rewinding to the start
// before each pass. Failures wrap entities.ErrHashing.
func (c *checksumCalculator) Calculate(ctx context.Context, artifact *entities.DownloadedArtifact, algorithms []string) (entities.DigestSet, error) {
	if artifact == nil {
		return nil, fmt.Errorf("%w: no artifact", entities.ErrHashing)
	}
	return c.CalculateFile(ctx, artifact.Path, algorithms)
}

// CalculateFile hashes the file at filePath with each algorithm in order
func (c *checksumCalculator) CalculateFile(ctx context.Context, filePath string, algorithms []string) (entities.DigestSet, error) {
	algs, err := services.LookupAlgorithms(algorithms)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrHashing, err)
	}

	//nolint:gosec // G304: File path is the artifact just downloaded or a user-provided file
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open file: %w", entities.ErrHashing, err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	set := make(entities.DigestSet, 0, len(algs))
	for _, alg := range algs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", entities.ErrHashing, err)
		}

		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: failed to rewind file: %w", entities.ErrHashing, err)
		}

		sum, err := services.HashReader(f, alg, c.chunkSize)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to compute %s: %w", entities.ErrHashing, alg.Name, err)
		}

		set = append(set, entities.Digest{Algorithm: alg.Name, Hex: sum})
	}

	return set, nil
}
