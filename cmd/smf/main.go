package main

import (
	"os"

	"github.com/runnerr0/smf/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// go-flags has already printed the error to stderr.
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
