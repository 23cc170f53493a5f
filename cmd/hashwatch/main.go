// Package main provides the hashwatch CLI for publishing checksums of nightly builds.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches to a subcommand and returns the process exit code
func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := args[0]

	// Dispatch to subcommand
	switch command {
	case "run":
		return runRun(ctx, args[1:])
	case "list":
		return runList(ctx, args[1:])
	case "hash":
		return runHash(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		return 1
	}
}

// parseExitCode maps a flag parse error to an exit code; the FlagSet has
// already printed the error and usage
func parseExitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}

func printUsage() {
	fmt.Println(`hashwatch - Nightly build checksum publisher

Usage:
  hashwatch <command> [options]

Commands:
  run    Resolve, download and hash every catalog variant, then write the report
  list   List catalog variants
  hash   Hash local files with the catalog algorithms
  show   Print the last published report

Use "hashwatch <command> --help" for more information about a command.`)
}
