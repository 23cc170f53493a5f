package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/docker/go-units"

	"github.com/ochairo/hashwatch/internal/domain-adapters/gateways"
	"github.com/ochairo/hashwatch/internal/domain/entities"
	"github.com/ochairo/hashwatch/internal/domain/services"
)

// fileDigests is the JSON output of the hash command
type fileDigests struct {
	File   string             `json:"file"`
	Size   string             `json:"size"`
	Hashes entities.DigestSet `json:"hashes"`
}

func runHash(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	var (
		algorithms = fs.String("algorithms", strings.Join(services.DefaultAlgorithms, ","), "Comma-separated digest algorithms")
		chunkSize  = fs.Int("chunk-size", services.DefaultChunkSize, "Read size in bytes")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: hashwatch hash [options] FILE...

Hash local files and print the digests as JSON.

Supported algorithms: %s

Options:
`, strings.Join(services.SupportedAlgorithms(), ", "))
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  hashwatch hash kicad-nightly.exe
  hashwatch hash --algorithms sha256,blake2b-256 a.exe b.exe
`)
	}

	if err := fs.Parse(args); err != nil {
		return parseExitCode(err)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one file is required\n\n")
		fs.Usage()
		return 1
	}

	algs, err := parseAlgorithms(*algorithms)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	calculator := gateways.NewChecksumCalculator(*chunkSize)
	out := make([]fileDigests, 0, fs.NArg())
	for _, path := range fs.Args() {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}

		hashes, err := calculator.CalculateFile(ctx, path, algs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		out = append(out, fileDigests{
			File:   path,
			Size:   units.HumanSize(float64(info.Size())),
			Hashes: hashes,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseAlgorithms splits a comma-separated list and validates every name
func parseAlgorithms(list string) ([]string, error) {
	var algs []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			algs = append(algs, name)
		}
	}
	if len(algs) == 0 {
		return nil, fmt.Errorf("no algorithms given")
	}
	if _, err := services.LookupAlgorithms(algs); err != nil {
		return nil, err
	}
	return algs, nil
}
