package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/subtag/pkg/batch"
	"github.com/yaklabco/subtag/pkg/config"
	"github.com/yaklabco/subtag/pkg/fix"
	"github.com/yaklabco/subtag/pkg/fsutil"
	"github.com/yaklabco/subtag/pkg/subs"
)

// Pipeline error categories.
var (
	// ErrFileNotFound indicates the script does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates the script cannot be read.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates the script could not be parsed.
	ErrParseFailure = errors.New("parse failure")

	// ErrEditFailure indicates the edit could not be applied.
	ErrEditFailure = errors.New("edit failure")

	// ErrWriteFailure indicates the edited script could not be saved.
	ErrWriteFailure = errors.New("write failure")
)

// ApplyFunc edits a parsed script in memory. It returns the batch result
// of the edit, or nil when it made no batch edit.
type ApplyFunc func(ctx context.Context, f *subs.File) (*batch.Result, error)

// FileResult is the result of running one script through the pipeline.
type FileResult struct {
	Path string

	// Batch is what the edit reported.
	Batch *batch.Result

	// LinesEdited counts the events whose text or style changed.
	LinesEdited int

	// Modified is true when the edit changed the script's content.
	Modified bool

	// Content is the edited script, nil when unmodified.
	Content []byte

	// Diff is set in dry-run mode.
	Diff *fix.Diff

	// Skipped is true when the file changed on disk while it was edited.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool
}

// Summary returns a one-word description of what happened to the file.
func (fr *FileResult) Summary() string {
	switch {
	case fr.Skipped:
		return "skipped: " + fr.SkipReason
	case fr.Written && fr.BackupCreated:
		return "edited (backup created)"
	case fr.Written:
		return "edited"
	case fr.Modified:
		return "changes pending"
	default:
		return "unchanged"
	}
}

// ProcessFile reads the script at path, applies fn and, unless the run is
// a dry run, writes the result back.
//
// The steps are:
//  1. Read and parse the script, remembering its on-disk state.
//  2. Apply the edit in memory.
//  3. Render the edited script; stop if nothing changed.
//  4. In dry-run mode, produce a diff and stop.
//  5. Skip the file if it changed on disk since step 1.
//  6. Back it up if backups are enabled.
//  7. Write it atomically with its original mode.
func ProcessFile(ctx context.Context, path string, cfg *config.Config, fn ApplyFunc) (*FileResult, error) {
	f, err := subs.Read(ctx, path)
	if err != nil {
		return nil, categorize(err)
	}
	return process(ctx, f, cfg, fn)
}

func process(ctx context.Context, f *subs.File, cfg *config.Config, fn ApplyFunc) (*FileResult, error) {
	result := &FileResult{Path: f.Path}

	res, err := fn(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEditFailure, err)
	}
	result.Batch = res

	content, err := f.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEditFailure, err)
	}
	for _, l := range f.Events() {
		if l.Modified() {
			result.LinesEdited++
		}
	}
	if bytes.Equal(content, f.Original()) {
		return result, nil
	}
	result.Modified = true
	result.Content = content

	if cfg != nil && cfg.DryRun {
		result.Diff = fix.GenerateDiff(f.Path, f.Original(), content)
		return result, nil
	}

	changed, err := fsutil.Changed(ctx, f.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if cfg.BackupsEnabled() {
		created, err := fsutil.CreateBackup(ctx, f.Path)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, f.Path, content, f.Snapshot.Mode.Perm()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

func categorize(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
}
