package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	Format Format

	// Color controls colorized output: "auto" (default), "always" or
	// "never".
	Color string

	// ShowLines lists every edited line under its file.
	ShowLines bool

	// ShowSummary writes aggregate statistics after the results.
	ShowSummary bool

	// DryRun words the output as changes that would be made.
	DryRun bool

	// Compact uses minified JSON.
	Compact bool

	// WorkingDir makes paths relative to it. Empty keeps them as they are.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowLines:   true,
		ShowSummary: true,
	}
}
