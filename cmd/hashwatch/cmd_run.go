package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ochairo/hashwatch/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/hashwatch/internal/domain-orchestrators"
	"github.com/ochairo/hashwatch/internal/domain/interfaces"
	ifgateways "github.com/ochairo/hashwatch/internal/domain/interfaces/gateways"
	"github.com/ochairo/hashwatch/internal/domain/services"
	"github.com/ochairo/hashwatch/internal/external-adapters/gpg"
	jsonadapter "github.com/ochairo/hashwatch/internal/external-adapters/json"
	"github.com/ochairo/hashwatch/internal/external-adapters/logging"
	"github.com/ochairo/hashwatch/internal/external-adapters/progress"
	"github.com/ochairo/hashwatch/internal/external-adapters/yaml"
)

// passphraseEnv names the variable holding the signing key passphrase
const passphraseEnv = "HASHWATCH_SIGNING_PASSPHRASE"

func runRun(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	var (
		catalogPath  = fs.String("catalog", "", "YAML catalog file (default: built-in KiCad nightly catalog)")
		checksumsDir = fs.String("checksums-dir", "checksums", "Directory for the published report")
		downloadsDir = fs.String("downloads-dir", "downloads", "Scratch directory for downloaded artifacts")
		noProgress   = fs.Bool("no-progress", false, "Disable download progress bars")
		signKey      = fs.String("sign-key", "", "OpenPGP secret key used to sign the report (writes <report>.asc)")
		pageTimeout  = fs.Duration("page-timeout", 30*time.Second, "Timeout for fetching a version page")
		fetchTimeout = fs.Duration("download-timeout", 30*time.Minute, "Timeout for downloading one artifact")
		chunkSize    = fs.Int("chunk-size", services.DefaultChunkSize, "Read size in bytes for downloads and hashing")
		logLevel     = fs.String("log-level", "info", "Log level (debug, info, warn, error)")
		logFormat    = fs.String("log-format", "text", "Log format (text or json)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: hashwatch run [options]

Resolve the current build of every catalog variant, download it, hash it and
overwrite <checksums-dir>/<package>.json. Variants that fail are skipped.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  %s  Passphrase for an encrypted --sign-key

Examples:
  hashwatch run
  hashwatch run --catalog kicad.yml --no-progress --log-format json
  hashwatch run --sign-key release.asc
`, passphraseEnv)
	}

	if err := fs.Parse(args); err != nil {
		return parseExitCode(err)
	}

	logger, err := logging.New(logging.Config{
		Output: os.Stderr,
		Level:  *logLevel,
		Format: *logFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	catalog, err := yaml.NewCatalogRepository(*catalogPath).LoadCatalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return 1
	}

	var signer ifgateways.ReportSigner
	if *signKey != "" {
		s, err := gpg.NewSignerFromFile(*signKey, passphrase())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading signing key: %v\n", err)
			return 1
		}
		logger.Info("Signing reports", interfaces.F("key", s.Fingerprint()))
		signer = s
	}

	var reporter ifgateways.ProgressReporter = ifgateways.NoOpProgress{}
	if !*noProgress {
		reporter = progress.NewBarReporter(os.Stderr)
	}

	orch := orchestrators.NewRunOrchestrator(
		gateways.NewVersionResolver(*pageTimeout),
		gateways.NewDownloader(gateways.DownloaderConfig{
			Timeout:   *fetchTimeout,
			ChunkSize: *chunkSize,
			Progress:  reporter,
			Logger:    logger,
		}),
		gateways.NewChecksumCalculator(*chunkSize),
		jsonadapter.NewReportRepository(*checksumsDir, signer),
		orchestrators.RunOrchestratorConfig{
			DownloadsDir: *downloadsDir,
			Logger:       logger,
		},
	)

	result, err := orch.Run(ctx, catalog)
	if result != nil && result.ReportPath != "" {
		fmt.Println(result.GetRunSummary())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func passphrase() []byte {
	if v, ok := os.LookupEnv(passphraseEnv); ok {
		return []byte(v)
	}
	return nil
}
