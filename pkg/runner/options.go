// Package runner applies one edit to many subtitle scripts concurrently.
package runner

import "github.com/yaklabco/subtag/pkg/config"

// Options controls which scripts a run touches and how.
type Options struct {
	// Paths are the files or directories to process. Empty means the
	// working directory.
	Paths []string

	// WorkingDir resolves relative Paths and glob patterns. Empty means the
	// process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions, with leading dot, that
	// count as scripts. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths when set.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs caps the number of concurrent workers; 0 or less means one per
	// CPU.
	Jobs int

	// Config is the resolved configuration for the run.
	Config *config.Config
}

// DefaultExtensions returns the script extensions discovered by default.
func DefaultExtensions() []string {
	return []string{".ass", ".ssa"}
}

// OptionsFromConfig builds Options for paths from the resolved
// configuration: ignore patterns become exclude globs and jobs carry over.
func OptionsFromConfig(cfg *config.Config, workDir string, paths []string) Options {
	opts := Options{
		Paths:      paths,
		WorkingDir: workDir,
		Config:     cfg,
	}
	if cfg != nil {
		opts.ExcludeGlobs = append(opts.ExcludeGlobs, cfg.Ignore...)
		opts.Jobs = cfg.Jobs
	}
	return opts
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
