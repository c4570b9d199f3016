// Package main is the entry point for the fsql command-line application.
// It provides an interactive SQL session against a hosted webtrigger endpoint.
package main

import (
	"github.com/chatch/forge-fsql/cmd"
)

// main is the entry point for the fsql CLI.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
