package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ochairo/hashwatch/internal/external-adapters/yaml"
)

func runList(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	catalogPath := fs.String("catalog", "", "YAML catalog file (default: built-in KiCad nightly catalog)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: hashwatch list [options]

List the variants of a catalog.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  hashwatch list
  hashwatch list --catalog kicad.yml
`)
	}

	if err := fs.Parse(args); err != nil {
		return parseExitCode(err)
	}

	catalog, err := yaml.NewCatalogRepository(*catalogPath).LoadCatalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		return 1
	}

	fmt.Printf("Package %s (%d variants, algorithms: %s):\n\n",
		catalog.Package(), catalog.Len(), strings.Join(catalog.Algorithms(), ", "))

	for _, v := range catalog.Variants() {
		fmt.Printf("  %-20s Version page: %s\n", v.Name, v.VersionPageURL)
		fmt.Printf("  %-20s Pattern:      %s\n", "", v.VersionPattern)
		fmt.Printf("  %-20s Download:     %s\n", "", v.DownloadURLTemplate)
		fmt.Println()
	}
	return 0
}
