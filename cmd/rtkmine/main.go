// Package main is the entry point for the rtkmine CLI.
package main

import (
	"os"

	"github.com/runger/rtkmine/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
