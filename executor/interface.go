package executor

import (
	"context"
	"fmt"
	"strings"
)

// Result holds the fully captured output of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Executor runs a command to completion. A command that starts and exits
// non-zero is reported through Result.ExitCode with a nil error; an error is
// returned only when the command could not be run at all.
type Executor interface {
	// Execute runs name with args in dir (the current directory when empty).
	Execute(ctx context.Context, dir, name string, args ...string) (*Result, error)
}

// LaunchError reports a command that could not be started, typically because
// the executable does not exist.
type LaunchError struct {
	Command []string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to run command '%s': %v", strings.Join(e.Command, " "), e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }
