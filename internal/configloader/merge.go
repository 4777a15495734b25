package configloader

import "github.com/yaklabco/subtag/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// It is used for flag values, where only what the user set is non-zero:
//   - Scalars: override wins when non-zero
//   - Booleans: override can only turn a setting on
//   - Slices: override replaces base when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.UndoLimit != 0 {
		result.UndoLimit = override.UndoLimit
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	if override.Seek.FastJumpStep != 0 {
		result.Seek.FastJumpStep = override.Seek.FastJumpStep
	}
	if override.Seek.Provider != "" {
		result.Seek.Provider = override.Seek.Provider
	}
	if override.Seek.Keyframes != "" {
		result.Seek.Keyframes = override.Seek.Keyframes
	}
	if override.Seek.Providers != nil {
		result.Seek.Providers = override.Seek.Providers
	}

	if override.Color.Slot != "" {
		result.Color.Slot = override.Color.Slot
	}
	if override.Color.SampleRadius != 0 {
		result.Color.SampleRadius = override.Color.SampleRadius
	}

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	// Alias families add up rather than replace.
	result.Aliases = append(result.Aliases, override.Aliases...)

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, c := range configs[1:] {
		result = merge(result, c)
	}
	return result
}
