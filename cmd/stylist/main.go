// Package main provides the stylist command-line style checker.
package main

import (
	"os"

	"github.com/leapstack-labs/stylist/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
