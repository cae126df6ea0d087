// Package main is the entry point for the ticketboard CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/danielolaszy/ticketboard/cmd"
	"github.com/danielolaszy/ticketboard/internal/logging"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// main executes the root command and handles any errors that occur.
func main() {
	logging.Debug("starting ticketboard", "version", version)

	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
