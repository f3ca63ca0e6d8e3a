// Command sdfmine mines SDF compound libraries for shared, nucleoside-like
// entries.
package main

import (
	"os"

	"github.com/turtacn/SDF-Library-Mining/internal/interfaces/cli"
	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

// Set with -ldflags "-X main.version=...".
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.Version, cli.GitCommit, cli.BuildDate = version, commit, buildDate

	// Execute has already printed err.
	os.Exit(errors.ExitCode(cli.Execute()))
}

//Personal.AI order the ending
