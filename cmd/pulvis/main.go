// Package main is the entry point for the pulvis CLI.
package main

import (
	"os"

	"github.com/f3rmion/pulvis/cmd/pulvis/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
