package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/subtag/pkg/config"
)

// envVarPrefix is the prefix for all subtag environment variables.
const envVarPrefix = "SUBTAG_"

// envVar describes one environment override.
type envVar struct {
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func boolVar(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

func intVar(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, i)
		return nil
	}
}

func sliceVar(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, parseSliceValue(value))
		return nil
	}
}

// envVars maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"DRY_RUN": {
		field: "dry_run", description: "Show changes without writing: true or false",
		apply: boolVar(func(c *config.Config, v bool) { c.DryRun = v }),
	},
	"JOBS": {
		field: "jobs", description: "Number of parallel workers (0 = auto)",
		apply: intVar(func(c *config.Config, v int) { c.Jobs = v }),
	},
	"FORMAT": {
		field: "format", description: "Output format: text, json, or diff",
		apply: stringVar(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) }),
	},
	"BACKUPS_ENABLED": {
		field: "backups.enabled", description: "Back up scripts before writing: true or false",
		apply: boolVar(func(c *config.Config, v bool) { c.Backups.Enabled = v }),
	},
	"BACKUPS_MODE": {
		field: "backups.mode", description: "Backup mode: sidecar or none",
		apply: stringVar(func(c *config.Config, v string) { c.Backups.Mode = v }),
	},
	"NO_BACKUPS": {
		field: "no_backups", description: "Disable backups: true or false",
		apply: boolVar(func(c *config.Config, v bool) { c.NoBackups = v }),
	},
	"IGNORE": {
		field: "ignore", description: "Comma-separated list of ignore patterns",
		apply: sliceVar(func(c *config.Config, v []string) { c.Ignore = v }),
	},
	"UNDO_LIMIT": {
		field: "undo_limit", description: "Undo steps kept per script",
		apply: intVar(func(c *config.Config, v int) { c.UndoLimit = v }),
	},
	"FAST_JUMP_STEP": {
		field: "seek.fast_jump_step", description: "Frames moved by a fast jump",
		apply: intVar(func(c *config.Config, v int) { c.Seek.FastJumpStep = v }),
	},
	"PROVIDERS": {
		field: "seek.providers", description: "Comma-separated list of subtitle providers",
		apply: sliceVar(func(c *config.Config, v []string) { c.Seek.Providers = v }),
	},
	"PROVIDER": {
		field: "seek.provider", description: "Current subtitle provider",
		apply: stringVar(func(c *config.Config, v string) { c.Seek.Provider = v }),
	},
	"COLOR_SLOT": {
		field: "color.slot", description: "Default color slot: primary, secondary, outline, or shadow",
		apply: stringVar(func(c *config.Config, v string) { c.Color.Slot = v }),
	},
	"SAMPLE_RADIUS": {
		field: "color.sample_radius", description: "Pixel radius averaged when sampling a frame",
		apply: intVar(func(c *config.Config, v int) { c.Color.SampleRadius = v }),
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SUBTAG_ (e.g., SUBTAG_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range lo.Keys(envVars) {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}

		if err := envVars[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	return lo.FilterMap(strings.Split(value, ","), func(part string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(part)
		return trimmed, trimmed != ""
	})
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, v := range envVars {
		if v.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns the supported environment variables with their
// descriptions, sorted by name.
func ListEnvVars() [][2]string {
	names := lo.Keys(envVars)
	sort.Strings(names)

	out := make([][2]string, 0, len(names))
	for _, suffix := range names {
		out = append(out, [2]string{envVarPrefix + suffix, envVars[suffix].description})
	}
	return out
}
