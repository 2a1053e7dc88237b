package main

import (
	"fmt"
	"os"

	"github.com/ve7ltx/rssdos/internal/cli"
)

// Version is overridden at build time with -ldflags.
var Version = "0.9.0"

func main() {
	cli.SetVersion(Version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
