package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/subtag/pkg/runner"
	"github.com/yaklabco/subtag/pkg/subs"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	DryRun  bool             `json:"dryRun"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path          string           `json:"path"`
	Status        string           `json:"status"`
	Commit        int              `json:"commit,omitempty"`
	ActiveDelta   int              `json:"activeDelta"`
	Lines         []JSONLineResult `json:"lines"`
	Written       bool             `json:"written"`
	BackupCreated bool             `json:"backupCreated,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// JSONLineResult represents one edited line.
type JSONLineResult struct {
	Number   int    `json:"number,omitempty"`
	Prior    string `json:"prior,omitempty"`
	HadPrior bool   `json:"hadPrior"`
	Inserted bool   `json:"inserted"`
	Block    int    `json:"block"`
	Delta    int    `json:"delta"`
	Text     string `json:"text"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesProcessed  int `json:"filesProcessed"`
	FilesModified   int `json:"filesModified"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
	LinesEdited     int `json:"linesEdited"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	// Tag values such as &H0000FF& stay readable.
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	if result == nil {
		return 0, nil
	}
	return changedFiles(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		DryRun:  r.opts.DryRun,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	s := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: s.FilesDiscovered,
		FilesProcessed:  s.FilesProcessed,
		FilesModified:   s.FilesModified,
		FilesSkipped:    s.FilesSkipped,
		FilesErrored:    s.FilesErrored,
		LinesEdited:     s.LinesEdited,
	}

	for _, file := range result.Files {
		jf := JSONFileResult{
			Path:  displayPath(file.Path, r.opts.WorkingDir),
			Lines: make([]JSONLineResult, 0),
		}

		if file.Error != nil {
			jf.Status = "error"
			jf.Error = file.Error.Error()
			output.Files = append(output.Files, jf)
			continue
		}

		if fr := file.Result; fr != nil {
			jf.Status = fr.Summary()
			jf.Written = fr.Written
			jf.BackupCreated = fr.BackupCreated

			if fr.Batch != nil {
				jf.Commit = int(fr.Batch.Commit)
				jf.ActiveDelta = fr.Batch.ActiveDelta
				for _, lr := range fr.Batch.Lines {
					jl := JSONLineResult{
						Prior:    lr.Prior,
						HadPrior: lr.HadPrior,
						Inserted: lr.Edit.Inserted(),
						Block:    lr.Edit.Block,
						Delta:    lr.Edit.Delta(),
					}
					if l, ok := lr.Line.(*subs.Line); ok {
						jl.Number = l.Number
					}
					if lr.Line != nil {
						jl.Text = lr.Line.Text()
					}
					jf.Lines = append(jf.Lines, jl)
				}
			}
		}

		output.Files = append(output.Files, jf)
	}

	return output
}
