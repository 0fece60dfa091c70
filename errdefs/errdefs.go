// Package errdefs defines the error taxonomy shared by the rewriter, the
// converter and the capability resolver. Callers match with errors.Is against
// the sentinels and errors.As against the typed errors when they need the
// attached diagnostics.
package errdefs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput marks an object that is neither a pipeline nor an estimator,
	// an empty pipeline, or a pipeline that has not been normalized into its
	// canonical form.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRuntimeUnavailable marks an external executable that could not be launched.
	ErrRuntimeUnavailable = errors.New("runtime not available")
	// ErrConversionFailed marks an external converter that ran but exited non-zero.
	ErrConversionFailed = errors.New("conversion failed")
	// ErrManifestParse marks a malformed line in a resource bundle manifest.
	ErrManifestParse = errors.New("malformed manifest")
)

// RuntimeUnavailableError is returned when the external runtime executable is
// missing or cannot be started.
type RuntimeUnavailableError struct {
	Command []string
	Err     error
}

func (e *RuntimeUnavailableError) Error() string {
	return fmt.Sprintf("%v: the Java executable is not installed or not on the system path (command: %s): %v",
		ErrRuntimeUnavailable, strings.Join(e.Command, " "), e.Err)
}

func (e *RuntimeUnavailableError) Unwrap() error { return e.Err }

func (e *RuntimeUnavailableError) Is(target error) bool { return target == ErrRuntimeUnavailable }

// ConversionFailedError carries everything needed to diagnose a failed
// conversion without re-running it in debug mode.
type ConversionFailedError struct {
	Command  []string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ConversionFailedError) Error() string {
	return fmt.Sprintf("%v: the converter application exited with code %d (command: %s); "+
		"it should have printed more information about the failure into its standard output and/or standard error streams",
		ErrConversionFailed, e.ExitCode, strings.Join(e.Command, " "))
}

func (e *ConversionFailedError) Is(target error) bool { return target == ErrConversionFailed }

// ManifestParseError points at the offending manifest line.
type ManifestParseError struct {
	Bundle string
	Line   int
	Text   string
}

func (e *ManifestParseError) Error() string {
	if e.Bundle == "" {
		return fmt.Sprintf("%v: line %d: %q is not a 'key = value' record", ErrManifestParse, e.Line, e.Text)
	}
	return fmt.Sprintf("%v: %s: line %d: %q is not a 'key = value' record", ErrManifestParse, e.Bundle, e.Line, e.Text)
}

func (e *ManifestParseError) Is(target error) bool { return target == ErrManifestParse }
