package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mdhtml/internal/configloader"
)

// Exit codes for mdhtml.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates that files failed to render or that compare
	// found differences.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrRenderFailed is returned when at least one file failed to render.
	ErrRenderFailed = errors.New("one or more files failed to render")

	// ErrDifferencesFound is returned by compare when renderings differ.
	ErrDifferencesFound = errors.New("renderings differ from the reference")

	// errUsage marks command-line usage errors.
	errUsage = errors.New("invalid usage")

	// errConfig marks configuration loading errors.
	errConfig = errors.New("configuration error")
)

// IsReported reports whether err only signals an outcome the command has
// already printed.
func IsReported(err error) bool {
	return errors.Is(err, ErrRenderFailed) || errors.Is(err, ErrDifferencesFound)
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case IsReported(err):
		return ExitFailure
	case errors.Is(err, errUsage):
		return ExitInvalidUsage
	case errors.Is(err, errConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
