package cli

import (
	"errors"

	"github.com/yaklabco/subtag/pkg/fsutil"
	"github.com/yaklabco/subtag/pkg/runner"
)

// Exit codes for subtag.
const (
	// ExitSuccess indicates every file was processed.
	ExitSuccess = 0

	// ExitFilesFailed indicates at least one file could not be edited.
	ExitFilesFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code of an edit run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasErrors() {
		return ExitSuccess
	}
	return ExitFilesFailed
}

// ExitCode maps an error returned by a command to an exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed), errors.Is(err, ErrTagNotSet), errors.Is(err, ErrNoBackup):
		return ExitFilesFailed
	case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrInvalidPoint), errors.Is(err, ErrNoKeyframes):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfigLoad):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
