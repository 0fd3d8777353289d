package main

import (
	"os"

	"github.com/michaeldyrynda/fsshell/internal/cli"
	fserrors "github.com/michaeldyrynda/fsshell/internal/errors"
)

// These variables are set at build time via -ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = date
	if err := cli.Execute(); err != nil {
		os.Exit(fserrors.ExitCode(err))
	}
}
