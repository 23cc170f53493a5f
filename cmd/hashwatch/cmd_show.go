package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/docker/go-units"

	"github.com/ochairo/hashwatch/internal/domain/services"
	jsonadapter "github.com/ochairo/hashwatch/internal/external-adapters/json"
)

func runShow(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	var (
		checksumsDir = fs.String("checksums-dir", "checksums", "Directory holding published reports")
		pkg          = fs.String("package", services.DefaultPackage, "Package whose report to print")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: hashwatch show [options]

Print the last published report for a package.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return parseExitCode(err)
	}

	repo := jsonadapter.NewReportRepository(*checksumsDir, nil)
	report, err := repo.LoadReport(ctx, *pkg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "No report for %s in %s\n", *pkg, *checksumsDir)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}

	age := units.HumanDuration(time.Since(report.Updated))
	fmt.Printf("Report %s (updated %s, %s ago)\n\n",
		repo.ReportPath(*pkg), report.Updated.Format(time.RFC3339), age)

	for _, r := range report.Results {
		fmt.Printf("  %s\n", r.Variant)
		fmt.Printf("    %s\n", r.Download)
		for _, d := range r.Hashes {
			fmt.Printf("    %-12s %s\n", d.Algorithm, d.Hex)
		}
		fmt.Println()
	}
	return 0
}
