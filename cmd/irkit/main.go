// Package main provides the irkit command-line interface.
package main

import (
	"os"

	"github.com/irkit-labs/irkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
