package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/subtag/internal/logging"
)

// Runner applies an edit to every discovered script using a worker pool.
// Each script is edited by one worker; scripts never share state.
type Runner struct {
	Apply  ApplyFunc
	Logger *log.Logger
}

// New creates a Runner for fn.
func New(fn ApplyFunc) *Runner {
	return &Runner{Apply: fn, Logger: logging.Discard()}
}

// Run discovers scripts under opts.Paths and processes them concurrently.
// The result lists every file in path order, even when the run was
// cancelled part way.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	r.logger().Debug("processing files", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, opts, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, opts Options, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		fileCtx := logging.WithFields(logging.WithLogger(ctx, r.logger()), logging.FieldPath, path)
		logger := logging.FromContext(fileCtx)

		outcome := FileOutcome{Path: path}
		fr, err := ProcessFile(fileCtx, path, opts.Config, r.Apply)
		if err != nil {
			outcome.Error = err
			logger.Debug("file failed", logging.FieldError, err)
		} else {
			outcome.Result = fr
			logger.Debug("file processed", logging.FieldLinesEdited, fr.LinesEdited)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return logging.Discard()
	}
	return r.Logger
}
