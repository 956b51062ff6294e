// Command cirrus translates cloud account and permission status into
// domain results, as a CLI and a small HTTP server.
package main

import (
	"os"

	"github.com/3leaps/cirrus/internal/cmd"
)

// Build metadata injected via -ldflags.
var (
	version   = "dev"
	commit    = "HEAD"
	buildDate = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, buildDate)

	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
