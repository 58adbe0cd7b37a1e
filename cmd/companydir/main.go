package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/companydir/internal/cli"
	"github.com/rshade/companydir/internal/provider"
	"github.com/rshade/companydir/pkg/version"
)

// Process exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitNotFound    = 2
	exitUnavailable = 3
)

const shortCommitLen = 7

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCmd(versionString()).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return exitCode(err)
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrCompanyNotFound):
		return exitNotFound
	case errors.Is(err, provider.ErrUnavailable):
		return exitUnavailable
	default:
		return exitError
	}
}

// versionString is the --version output: the version plus the short commit when known.
func versionString() string {
	v := version.GetVersion()
	commit := version.GetCommit()
	if commit == "" {
		return v
	}
	return fmt.Sprintf("%s (commit %s)", v, commit[:min(len(commit), shortCommitLen)])
}
