// Package main provides the plotline CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/plotline/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
