package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rshade/pagedtable/internal/cli"
	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/table"
	"github.com/rshade/pagedtable/pkg/version"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and maps its error to an exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode returns exitUsage for configuration and argument errors and
// exitFailure for everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, table.ErrInvalidArgument),
		errors.Is(err, table.ErrIndexOutOfRange):
		return exitUsage
	default:
		return exitFailure
	}
}
