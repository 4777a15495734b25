package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/subtag/pkg/batch"
	"github.com/yaklabco/subtag/pkg/config"
	"github.com/yaklabco/subtag/pkg/fsutil"
	"github.com/yaklabco/subtag/pkg/runner"
	"github.com/yaklabco/subtag/pkg/subs"
)

const script = "[Script Info]\n" +
	"ScriptType: v4.00+\n" +
	"\n" +
	"[Events]\n" +
	"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
	"Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,Hello {\\c&H0000FF&}world\n" +
	"Dialogue: 0,0:00:03.00,0:00:04.00,Default,,0,0,0,,plain\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// boldFirst makes the first event bold from its start.
func boldFirst(_ context.Context, f *subs.File) (*batch.Result, error) {
	sel, err := subs.SelectEvents(f, 1, []int{1}, 0, 0)
	if err != nil {
		return nil, err
	}
	return batch.New(sel, subs.NewHistory(f.Lines(), 0)).SetTag(batch.Request{
		Description: "bold",
		Tag:         `\b`,
		Value:       "1",
	})
}

func noop(context.Context, *subs.File) (*batch.Result, error) {
	return nil, nil //nolint:nilnil // No edit.
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{
		"ep01.ass",
		"ep02.SSA",
		"notes.txt",
		".cache/ep03.ass",
		"season1/ep04.ass",
		"old/ep05.ass",
	} {
		writeFile(t, filepath.Join(dir, name), script)
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "directory",
			opts: runner.Options{WorkingDir: dir},
			want: []string{"ep01.ass", "ep02.SSA", "old/ep05.ass", "season1/ep04.ass"},
		},
		{
			name: "exclude",
			opts: runner.Options{WorkingDir: dir, ExcludeGlobs: []string{"old/**"}},
			want: []string{"ep01.ass", "ep02.SSA", "season1/ep04.ass"},
		},
		{
			name: "include",
			opts: runner.Options{WorkingDir: dir, IncludeGlobs: []string{"season1/*.ass"}},
			want: []string{"season1/ep04.ass"},
		},
		{
			name: "explicit file and duplicate",
			opts: runner.Options{WorkingDir: dir, Paths: []string{"ep01.ass", "notes.txt", "ep01.ass"}},
			want: []string{"ep01.ass"},
		},
		{
			name: "extensions",
			opts: runner.Options{WorkingDir: dir, Paths: []string{"."}, Extensions: []string{".txt"}},
			want: []string{"notes.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), tt.opts)
			require.NoError(t, err)

			want := make([]string, len(tt.want))
			for i, name := range tt.want {
				want[i] = filepath.Join(dir, filepath.FromSlash(name))
			}
			assert.Equal(t, want, files)
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Paths: []string{"missing.ass"}})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"old/**"}
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, "/work", []string{"a.ass"})
	assert.Equal(t, []string{"old/**"}, opts.ExcludeGlobs)
	assert.Equal(t, 3, opts.Jobs)
	assert.Equal(t, "/work", opts.WorkingDir)
	assert.Equal(t, []string{"a.ass"}, opts.Paths)
	assert.Same(t, cfg, opts.Config)
}

func TestRun_WritesEditsWithBackups(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "a.ass"), filepath.Join(dir, "b.ass")}
	for _, p := range paths {
		writeFile(t, p, script)
	}

	cfg := config.NewConfig()
	result, err := runner.New(boldFirst).Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg, Jobs: 2})
	require.NoError(t, err)

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 2,
		FilesProcessed:  2,
		FilesModified:   2,
		LinesEdited:     2,
	}, result.Stats)
	assert.True(t, result.HasChanges())
	assert.False(t, result.HasErrors())

	for i, p := range paths {
		require.Equal(t, p, result.Files[i].Path)
		fr := result.Files[i].Result
		require.NotNil(t, fr)
		assert.True(t, fr.Written)
		assert.True(t, fr.BackupCreated)
		assert.Equal(t, "edited (backup created)", fr.Summary())
		assert.Equal(t, 5, fr.Batch.ActiveDelta)

		got, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(got), `,,{\b1}Hello {\c&H0000FF&}world`+"\n")
		assert.Contains(t, string(got), ",,plain\n")

		backup, err := os.ReadFile(fsutil.BackupPath(p))
		require.NoError(t, err)
		assert.Equal(t, script, string(backup))
	}
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.ass")
	writeFile(t, path, script)

	cfg := config.NewConfig()
	cfg.DryRun = true

	result, err := runner.New(boldFirst).Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	fr := result.Files[0].Result
	require.NotNil(t, fr)
	assert.True(t, fr.Modified)
	assert.False(t, fr.Written)
	assert.Equal(t, "changes pending", fr.Summary())
	require.NotNil(t, fr.Diff)
	assert.Equal(t, 1, fr.Diff.Additions)
	assert.Equal(t, 1, fr.Diff.Deletions)
	assert.Equal(t, 0, result.Stats.FilesModified)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, script, string(got))
	assert.False(t, fsutil.BackupExists(path))
}

func TestRun_NoBackups(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.ass")
	writeFile(t, path, script)

	cfg := config.NewConfig()
	cfg.NoBackups = true

	result, err := runner.New(boldFirst).Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	assert.True(t, result.Files[0].Result.Written)
	assert.False(t, fsutil.BackupExists(path))
}

func TestRun_Unchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.ass"), script)

	result, err := runner.New(noop).Run(context.Background(), runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	require.NoError(t, err)

	fr := result.Files[0].Result
	assert.False(t, fr.Modified)
	assert.Nil(t, fr.Content)
	assert.Equal(t, "unchanged", fr.Summary())
	assert.False(t, result.HasChanges())
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.ass"), script)
	writeFile(t, filepath.Join(dir, "b.ass"), "\x00\x01\x02binary")

	boom := errors.New("boom")
	failing := func(_ context.Context, f *subs.File) (*batch.Result, error) {
		if filepath.Base(f.Path) == "a.ass" {
			return nil, boom
		}
		return boldFirst(context.Background(), f)
	}

	result, err := runner.New(failing).Run(context.Background(), runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesErrored)
	assert.True(t, result.HasErrors())
	require.ErrorIs(t, result.Files[0].Error, runner.ErrEditFailure)
	require.ErrorIs(t, result.Files[0].Error, boom)
	require.ErrorIs(t, result.Files[1].Error, runner.ErrParseFailure)
	require.ErrorIs(t, result.Files[1].Error, subs.ErrBinary)
}

func TestProcessFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := runner.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "gone.ass"), nil, noop)
	require.ErrorIs(t, err, runner.ErrFileNotFound)
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New(boldFirst).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
}
