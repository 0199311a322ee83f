// Package main provides the opdoc CLI.
package main

import (
	"os"

	"github.com/opdoc-labs/opdoc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
