// Package reporter writes the outcome of a run in one of several formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/subtag/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result. It returns the
	// number of files that were, or in a dry run would be, changed.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func changedFiles(result *runner.Result) int {
	n := 0
	for _, f := range result.Files {
		if f.Result != nil && f.Result.Modified {
			n++
		}
	}
	return n
}
