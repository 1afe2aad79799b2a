// Command ecotrack is the EcoTrack carbon footprint tracker.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/rshade/ecotrack/internal/cli"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/pkg/version"
)

// Exit codes.
const (
	exitOK             = 0
	exitError          = 1
	exitStateCorrupted = 2
)

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(context.Background())
}

// exitCodeFor maps a command error to the process exit code. A corrupted
// state file gets its own code so scripts can tell it from a bad flag.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, ledger.ErrStateCorrupted):
		return exitStateCorrupted
	default:
		return exitError
	}
}

func main() {
	os.Exit(exitCodeFor(run()))
}
