package reporter

import (
	"path/filepath"
	"strings"
)

// displayPath returns path relative to workDir. Paths outside workDir, or
// that would need more than two parent traversals, fall back to the
// base name.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
