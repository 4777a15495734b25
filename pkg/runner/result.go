package runner

// FileOutcome is the outcome for one discovered script.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *FileResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int
	FilesModified   int
	LinesEdited     int
}

// Result is the overall result of a run. Files are in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasChanges reports whether any file was, or in a dry run would be,
// modified.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	for _, f := range r.Files {
		if f.Result != nil && f.Result.Modified {
			return true
		}
	}
	return false
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.LinesEdited += outcome.Result.LinesEdited
	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.Written {
		r.Stats.FilesModified++
	}
}
