// Package main provides the CLI entry point for projectboard.
package main

import (
	"os"

	"github.com/leapstack-labs/projectboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
