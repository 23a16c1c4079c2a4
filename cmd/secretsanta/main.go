// Package main is the entry point for the secretsanta service and CLI.
package main

import (
	"os"

	"secretsanta/internal/cli"
)

// Build information injected via ldflags at build time.
var version = "dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
