// Package main is the entry point for the checkout CLI.
package main

import (
	"os"

	"checkout-pricing/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
