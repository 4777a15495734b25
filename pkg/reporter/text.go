package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/subtag/internal/ui/pretty"
	"github.com/yaklabco/subtag/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Warning.Render("No subtitle scripts found."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		fr := file.Result
		if fr == nil || (!fr.Modified && !fr.Skipped) {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, fr.LinesEdited, fr.Summary()))
		if r.opts.ShowLines && fr.Batch != nil {
			for _, lr := range fr.Batch.Lines {
				fmt.Fprint(r.bw, r.styles.FormatLineEdit(lr))
			}
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.DryRun))
	}

	return changedFiles(result), nil
}
