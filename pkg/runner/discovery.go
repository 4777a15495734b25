package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Discover returns the scripts named by opts as sorted, deduplicated
// absolute paths. A file named explicitly is included if it has a script
// extension and is not excluded; directories are walked, skipping hidden
// entries.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m := matcher{
		workDir:    workDir,
		extensions: opts.extensions(),
		include:    opts.IncludeGlobs,
		exclude:    opts.ExcludeGlobs,
	}

	var files []string
	for _, p := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if !info.IsDir() {
			if m.file(abs) {
				files = append(files, abs)
			}
			continue
		}

		found, err := walk(ctx, abs, m, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	files = lo.Uniq(files)
	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func walk(ctx context.Context, root string, m matcher, follow bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || m.excluded(p) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(p)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !follow {
					return nil
				}
				// WalkDir does not follow the link itself, so walk its target.
				sub, err := walk(ctx, target, m, follow)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.file(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matcher decides which paths discovery keeps. Globs are matched against
// the slash-separated path relative to workDir.
type matcher struct {
	workDir    string
	extensions []string
	include    []string
	exclude    []string
}

func (m matcher) rel(p string) string {
	rel, err := filepath.Rel(m.workDir, p)
	if err != nil {
		rel = p
	}
	return filepath.ToSlash(rel)
}

func (m matcher) excluded(p string) bool {
	rel := m.rel(p)
	return lo.SomeBy(m.exclude, func(g string) bool { return matchGlob(rel, g) })
}

func (m matcher) file(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	if !lo.ContainsBy(m.extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}
	if m.excluded(p) {
		return false
	}
	if len(m.include) == 0 {
		return true
	}
	rel := m.rel(p)
	return lo.SomeBy(m.include, func(g string) bool { return matchGlob(rel, g) })
}

// matchGlob reports whether the slash-separated path matches pattern.
// A "**" segment matches any number of directories, including none. A
// pattern without a slash is also tried against the base name, so "*.ass"
// matches at any depth. A pattern matching a directory matches everything
// below it.
func matchGlob(p, pattern string) bool {
	pattern = filepath.ToSlash(pattern)
	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(p)); ok {
			return true
		}
	}

	segs := strings.Split(p, "/")
	pat := strings.Split(strings.TrimSuffix(pattern, "/"), "/")
	for i := len(segs); i > 0; i-- {
		if matchSegments(segs[:i], pat) {
			return true
		}
	}
	return false
}

func matchSegments(segs, pat []string) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			rest := pat[1:]
			for i := 0; i <= len(segs); i++ {
				if matchSegments(segs[i:], rest) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		if ok, err := path.Match(pat[0], segs[0]); err != nil || !ok {
			return false
		}
		segs, pat = segs[1:], pat[1:]
	}
	return len(segs) == 0
}
