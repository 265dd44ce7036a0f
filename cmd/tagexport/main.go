// Package main provides the entry point for the tagexport command.
package main

import (
	"fmt"
	"os"

	"github.com/listenupapp/tagexport/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
