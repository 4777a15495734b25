package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/subtag/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		original := config.NewConfig()
		original.Aliases = [][]string{{`\bord`, `\border`}}
		original.Ignore = []string{"old/**"}
		original.DryRun = true

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Aliases[0][0] = `\xbord`
		clone.Ignore[0] = "new/**"
		clone.Seek.Providers[0] = "vsfilter"

		assert.Equal(t, `\bord`, original.Aliases[0][0])
		assert.Equal(t, "old/**", original.Ignore[0])
		assert.Equal(t, "libass", original.Seek.Providers[0])
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Aliases = [][]string{{`\bord`, `\border`}}
	original.Seek.FastJumpStep = 24

	data, err := original.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, original.Aliases, parsed.Aliases)
	assert.Equal(t, original.Seek, parsed.Seek)
	assert.Equal(t, original.Backups, parsed.Backups)

	// CLI-only fields are not serialized.
	assert.Empty(t, parsed.Format)
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, c *config.Config)
	}{
		{
			name:  "empty document",
			input: "",
			check: func(t *testing.T, c *config.Config) {
				assert.Zero(t, c.UndoLimit)
			},
		},
		{
			name:  "nested settings",
			input: "seek:\n  fast_jump_step: 5\ncolor:\n  slot: outline\n",
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, 5, c.Seek.FastJumpStep)
				assert.Equal(t, "outline", c.Color.Slot)
			},
		},
		{
			name:    "unknown key",
			input:   "flavor: gfm\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			input:   "seek: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.FromYAML([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader(config.DefaultTemplateHeader())
	require.NoError(t, err)
	assert.Contains(t, string(data), "# subtag configuration\n")
	assert.Contains(t, string(data), "fast_jump_step: 10")
}
