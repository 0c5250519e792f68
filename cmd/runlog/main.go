// Package main provides the runlog CLI tool.
package main

import (
	"fmt"
	"os"

	"runlog/cmd/runlog/commands"
)

var version = "dev"

func main() {
	if err := commands.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
