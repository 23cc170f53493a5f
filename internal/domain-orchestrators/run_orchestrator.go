// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ochairo/hashwatch/internal/domain/entities"
	"github.com/ochairo/hashwatch/internal/domain/interfaces"
	"github.com/ochairo/hashwatch/internal/domain/interfaces/gateways"
	"github.com/ochairo/hashwatch/internal/domain/interfaces/repositories"
	"github.com/ochairo/hashwatch/internal/domain/services"
)

// RunOrchestrator drives every catalog variant through
// resolve -> fetch -> hash -> cleanup and persists the run report
type RunOrchestrator struct {
	resolver     gateways.VersionResolver
	downloader   gateways.ArtifactDownloader
	calculator   gateways.ChecksumCalculator
	reports      repositories.ReportRepository
	logger       interfaces.Logger
	downloadsDir string
	now          func() time.Time
	newRunID     func() string
}

// RunOrchestratorConfig holds configuration for the orchestrator
type RunOrchestratorConfig struct {
	DownloadsDir string
	Logger       interfaces.Logger
	Clock        func() time.Time
	RunID        func() string
}

// NewRunOrchestrator creates a new run orchestrator
func NewRunOrchestrator(
	resolver gateways.VersionResolver,
	downloader gateways.ArtifactDownloader,
	calculator gateways.ChecksumCalculator,
	reports repositories.ReportRepository,
	config RunOrchestratorConfig,
) *RunOrchestrator {
	downloadsDir := config.DownloadsDir
	if downloadsDir == "" {
		downloadsDir = "downloads"
	}
	logger := config.Logger
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	now := config.Clock
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	newRunID := config.RunID
	if newRunID == nil {
		newRunID = uuid.NewString
	}

	return &RunOrchestrator{
		resolver:     resolver,
		downloader:   downloader,
		calculator:   calculator,
		reports:      reports,
		logger:       logger,
		downloadsDir: downloadsDir,
		now:          now,
		newRunID:     newRunID,
	}
}

// RunResult contains the result of a run
type RunResult struct {
	RunID         string
	Package       string
	Report        *entities.RunReport
	Outcomes      []entities.VariantOutcome
	ReportPath    string
	TotalDuration time.Duration
}

// Run processes the catalog's variants sequentially, in catalog order.
// Per-variant failures become skipped outcomes; only persisting the report
// fails the run. When ctx is canceled the remaining variants are not started,
// the variants completed so far are still persisted and the context error is
// returned, joined with any persistence error.
func (o *RunOrchestrator) Run(ctx context.Context, catalog *services.Catalog) (*RunResult, error) {
	startTime := time.Now()
	result := &RunResult{
		RunID:    o.newRunID(),
		Package:  catalog.Package(),
		Outcomes: make([]entities.VariantOutcome, 0, catalog.Len()),
	}
	logger := interfaces.WithFields(o.logger,
		interfaces.F("run_id", result.RunID),
		interfaces.F("package", result.Package),
	)

	logger.Info("Starting run", interfaces.F("variants", catalog.Len()))

	algorithms := catalog.Algorithms()
	results := make([]entities.VariantResult, 0, catalog.Len())

	var cancelErr error
	for _, spec := range catalog.Variants() {
		if err := ctx.Err(); err != nil {
			cancelErr = fmt.Errorf("run canceled before variant %s: %w", spec.Name, err)
			break
		}

		outcome := o.processVariant(ctx, logger, spec, algorithms)

		// A variant interrupted by cancellation is not a skip
		if outcome.Skipped() && ctx.Err() != nil {
			cancelErr = fmt.Errorf("run canceled during variant %s: %w", spec.Name, ctx.Err())
			break
		}

		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Skipped() {
			logger.Warn("Skipping variant",
				interfaces.F("variant", spec.Name),
				interfaces.F("stage", string(outcome.FailedAt)),
				interfaces.F("reason", outcome.Reason()),
				interfaces.F("error", outcome.Err),
			)
			continue
		}

		results = append(results, *outcome.Result)
		logger.Info("Variant hashed",
			interfaces.F("variant", spec.Name),
			interfaces.F("download", outcome.Result.Download),
			interfaces.F("duration", outcome.Duration.Round(time.Millisecond).String()),
		)
	}

	if cancelErr != nil {
		logger.Warn("Run canceled, persisting completed variants",
			interfaces.F("hashed", len(results)),
			interfaces.F("error", cancelErr),
		)
	}

	result.Report = &entities.RunReport{
		Results: results,
		Updated: o.now(),
	}

	// Completed variants are persisted even after cancellation
	path, err := o.reports.SaveReport(context.WithoutCancel(ctx), catalog.Package(), result.Report)
	if err != nil {
		if !errors.Is(err, entities.ErrPersistence) {
			err = fmt.Errorf("%w: %w", entities.ErrPersistence, err)
		}
		logger.Error("Failed to persist report", interfaces.F("error", err))
		return result, errors.Join(cancelErr, err)
	}
	result.ReportPath = path
	result.TotalDuration = time.Since(startTime)

	logger.Info("Run complete",
		interfaces.F("report", path),
		interfaces.F("hashed", len(results)),
		interfaces.F("skipped", result.SkippedCount()),
	)

	return result, cancelErr
}

// processVariant runs one variant through the pipeline. It never returns an
// error: failures are folded into a skipped outcome. A downloaded artifact is
// always released before returning.
func (o *RunOrchestrator) processVariant(ctx context.Context, logger interfaces.Logger, spec entities.VariantSpec, algorithms []string) entities.VariantOutcome {
	startTime := time.Now()
	outcome := entities.VariantOutcome{
		Variant: spec.Name,
		State:   entities.StateResolving,
	}
	skip := func(err error) entities.VariantOutcome {
		outcome.FailedAt = outcome.State
		outcome.State = entities.StateSkipped
		outcome.Err = err
		outcome.Duration = time.Since(startTime)
		return outcome
	}

	// Step 1: Resolve the version token
	resolved, err := o.resolver.Resolve(ctx, spec)
	if err != nil {
		return skip(fmt.Errorf("failed to resolve version: %w", err))
	}
	logger.Debug("Resolved version",
		interfaces.F("variant", spec.Name),
		interfaces.F("version", resolved.Token),
	)

	// Step 2: Build the download URL
	url, err := services.DownloadURL(spec.DownloadURLTemplate, resolved.Token)
	if err != nil {
		return skip(fmt.Errorf("failed to build download URL: %w", err))
	}

	// Step 3: Download the artifact
	outcome.State = entities.StateFetching
	artifact, err := o.downloader.Download(ctx, url, o.downloadsDir)
	if err != nil {
		return skip(fmt.Errorf("failed to download artifact: %w", err))
	}

	// Step 4: Hash, then release the artifact whatever the hashing result
	outcome.State = entities.StateHashing
	hashes, err := o.hashAndRelease(ctx, logger, artifact, algorithms)
	if err != nil {
		return skip(fmt.Errorf("failed to hash artifact: %w", err))
	}

	outcome.State = entities.StateDone
	outcome.Result = &entities.VariantResult{
		Variant:  spec.Name,
		Download: url,
		Hashes:   hashes,
	}
	outcome.Duration = time.Since(startTime)
	return outcome
}

func (o *RunOrchestrator) hashAndRelease(ctx context.Context, logger interfaces.Logger, artifact *entities.DownloadedArtifact, algorithms []string) (entities.DigestSet, error) {
	defer func() {
		if err := o.downloader.Release(artifact); err != nil {
			logger.Error("Failed to remove downloaded artifact",
				interfaces.F("path", artifact.Path),
				interfaces.F("error", err),
			)
		}
	}()

	return o.calculator.Calculate(ctx, artifact, algorithms)
}

// SkippedCount returns how many variants were left out of the report
func (r *RunResult) SkippedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Skipped() {
			n++
		}
	}
	return n
}

// GetRunSummary returns a human-readable summary of the run
func (r *RunResult) GetRunSummary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Package: %s\n", r.Package)
	for _, o := range r.Outcomes {
		if o.Skipped() {
			fmt.Fprintf(&b, "  %-16s skipped (%s at %s)\n", o.Variant, o.Reason(), o.FailedAt)
			continue
		}
		fmt.Fprintf(&b, "  %-16s %s\n", o.Variant, o.Result.Download)
	}
	fmt.Fprintf(&b, "Hashed: %d, skipped: %d\n", len(r.Outcomes)-r.SkippedCount(), r.SkippedCount())
	if r.ReportPath != "" {
		fmt.Fprintf(&b, "Report: %s\n", r.ReportPath)
	}
	fmt.Fprintf(&b, "Total: %v", r.TotalDuration.Round(time.Millisecond))

	return b.String()
}
