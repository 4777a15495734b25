package cli_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/subtag/internal/cli"
	"github.com/yaklabco/subtag/pkg/fsutil"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "subtag", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, path := range [][]string{
		{"set"},
		{"color"},
		{"get"},
		{"blocks"},
		{"seek", "keyframe"},
		{"seek", "jump"},
		{"seek", "provider"},
		{"restore"},
		{"config"},
		{"init"},
		{"version"},
	} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err, "find %v", path)
		assert.Equal(t, path[len(path)-1], sub.Name())
	}
}

func TestEditCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	shared := []string{"lines", "active", "pos", "end", "dry-run", "no-backups", "jobs", "format", "ignore", "compact"}
	extra := map[string][]string{
		"set":   {"tag", "value"},
		"color": {"slot", "value", "frame", "at"},
	}

	for name, flags := range extra {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)

		for _, flag := range append(shared, flags...) {
			assert.NotNil(t, sub.Flags().Lookup(flag), "%s --%s", name, flag)
		}
	}
}

func TestHelpIsStyledPlain(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := cli.NewRootCommand(testInfo)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"set", "--help"})

	require.NoError(t, cmd.Execute())

	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "subtag set <paths...>")
	assert.Contains(t, help, "--lines string")
	assert.Contains(t, help, "Global Flags:")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"files failed", cli.ErrFilesFailed, cli.ExitFilesFailed},
		{"bad range", cli.ErrInvalidRange, cli.ExitInvalidUsage},
		{"bad point", cli.ErrInvalidPoint, cli.ExitInvalidUsage},
		{"no keyframes", cli.ErrNoKeyframes, cli.ExitInvalidUsage},
		{"tag not set", cli.ErrTagNotSet, cli.ExitFilesFailed},
		{"config", errors.Join(cli.ErrConfigLoad, errors.New("bad key")), cli.ExitConfigError},
		{"missing file", fsutil.ErrNotFound, cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil))
}
