package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/subtag/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
		NonInteractive:     true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".subtag.yml"), `
seek:
  fast_jump_step: 24
backups:
  enabled: false
aliases:
  - ['\bord', '\border']
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	assert.Equal(t, 24, result.Config.Seek.FastJumpStep)
	assert.False(t, result.Config.Backups.Enabled, "a file can turn backups off")
	assert.Equal(t, "sidecar", result.Config.Backups.Mode, "unset keys keep their defaults")
	assert.Equal(t, []string{"libass"}, result.Config.Seek.Providers)
	assert.Equal(t, [][]string{{`\bord`, `\border`}}, result.Config.Aliases)
	assert.Equal(t, []string{filepath.Join(dir, ".subtag.yml")}, result.LoadedFrom)
}

func TestLoad_ProjectConfigSearchesUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, "subtag.yaml"), "undo_limit: 7\n")

	nested := filepath.Join(root, "season1", "ep01")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, 7, result.Config.UndoLimit)
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".subtag.yml"), "undo_limit: 5\ncolor:\n  slot: outline\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeFile(t, explicit, "undo_limit: 9\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 9, result.Config.UndoLimit)
	assert.Equal(t, "outline", result.Config.Color.Slot)
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.Paths.Explicit)
}

func TestLoad_CLIConfigWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".subtag.yml"), "seek:\n  fast_jump_step: 24\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		Jobs:      3,
		DryRun:    true,
		Format:    config.FormatDiff,
		NoBackups: true,
		Seek:      config.SeekConfig{FastJumpStep: 48},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, 3, cfg.Jobs)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, config.FormatDiff, cfg.Format)
	assert.Equal(t, 48, cfg.Seek.FastJumpStep)
	assert.False(t, cfg.BackupsEnabled())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown key", content: "flavor: gfm\n", want: "flavor"},
		{name: "bad yaml", content: "seek: [\n", want: "parse"},
		{name: "invalid value", content: "seek:\n  fast_jump_step: 0\n", want: "fast_jump_step"},
		{name: "bad slot", content: "color:\n  slot: fill\n", want: "color.slot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ".subtag.yml"), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".subtag.yml"), `
seek:
  providers: [libass]
  provider: vsfilter
aliases:
  - ['\bord']
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "seek.provider")
	assert.Contains(t, result.Warnings[1], "fewer than two")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SUBTAG_JOBS", "4")
	t.Setenv("SUBTAG_DRY_RUN", "true")
	t.Setenv("SUBTAG_PROVIDERS", "libass, vsfilter ,")
	t.Setenv("SUBTAG_BACKUPS_ENABLED", "false")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, 4, cfg.Jobs)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, []string{"libass", "vsfilter"}, cfg.Seek.Providers)
	assert.False(t, cfg.Backups.Enabled)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Setenv("SUBTAG_UNDO_LIMIT", "many")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUBTAG_UNDO_LIMIT")
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SUBTAG_FAST_JUMP_STEP", GetEnvVarName("seek.fast_jump_step"))
	assert.Empty(t, GetEnvVarName("flavor"))

	vars := ListEnvVars()
	require.NotEmpty(t, vars)
	for i, v := range vars {
		assert.True(t, strings.HasPrefix(v[0], envVarPrefix))
		assert.NotEmpty(t, v[1])
		if i > 0 {
			assert.Less(t, vars[i-1][0], v[0])
		}
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	base := config.NewConfig()
	base.Aliases = [][]string{{`\bord`, `\border`}}

	merged := MergeAll(base,
		&config.Config{Jobs: 2},
		&config.Config{Aliases: [][]string{{`\shad`, `\shadow`}}, Ignore: []string{"old/**"}},
	)

	assert.Equal(t, 2, merged.Jobs)
	assert.Equal(t, [][]string{{`\bord`, `\border`}, {`\shad`, `\shadow`}}, merged.Aliases)
	assert.Equal(t, []string{"old/**"}, merged.Ignore)
	assert.Len(t, base.Aliases, 1, "base is not modified")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Jobs = -1
	cfg.Format = "sarif"
	cfg.Ignore = []string{"[bad"}
	cfg.Aliases = [][]string{{"bord", `\bord`}}

	result := ValidateWithFile(cfg, "cfg.yml")
	assert.False(t, result.Valid())

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
		assert.Equal(t, "cfg.yml", e.FilePath)
	}
	assert.ElementsMatch(t, []string{"jobs", "format", "ignore[0]", "aliases[0]"}, fields)

	assert.True(t, Validate(config.NewConfig()).Valid())
	assert.True(t, Validate(nil).Valid())
	assert.True(t, IsValidBackupMode("none"))
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".subtag.yml")
	require.NoError(t, WriteConfig(context.Background(), config.NewConfig(), path))

	result, err := Load(context.Background(), isolated(filepath.Dir(path)))
	require.NoError(t, err)
	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.Equal(t, config.NewConfig().Seek, result.Config.Seek)
}
