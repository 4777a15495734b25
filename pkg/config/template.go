package config

import (
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. Otherwise the
	// settings are commented out.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var content []byte
	if opts.Full {
		content = []byte(fullTemplate)
	} else {
		content = []byte(minimalTemplate)
	}

	if opts.Format == "json" {
		return templateToJSON([]byte(fullTemplate))
	}
	return content, nil
}

// templateToJSON converts a YAML template to JSON by decoding it into a
// Config, so the result always matches what FromYAML accepts.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	cfg, err := FromYAML(yamlContent)
	if err != nil {
		return nil, err
	}

	jsonBytes, err := json.MarshalIndent(jsonView(cfg), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

func jsonView(cfg *Config) map[string]any {
	return map[string]any{
		"aliases":    cfg.Aliases,
		"undo_limit": cfg.UndoLimit,
		"ignore":     cfg.Ignore,
		"seek": map[string]any{
			"fast_jump_step": cfg.Seek.FastJumpStep,
			"providers":      cfg.Seek.Providers,
			"provider":       cfg.Seek.Provider,
		},
		"color": map[string]any{
			"slot":          cfg.Color.Slot,
			"sample_radius": cfg.Color.SampleRadius,
		},
		"backups": map[string]any{
			"enabled": cfg.Backups.Enabled,
			"mode":    cfg.Backups.Mode,
		},
	}
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# subtag configuration
# See: https://github.com/yaklabco/subtag`
}

const minimalTemplate = `# subtag configuration
# See: https://github.com/yaklabco/subtag

# Extra tag spellings that mean the same directive. \c/\1c and \fr/\frz
# are always treated as one.
# aliases:
#   - ['\bord', '\border']

# Undo steps kept per script
# undo_limit: 100

# File patterns to skip (glob patterns)
# ignore:
#   - "backup/**"

# seek:
#   fast_jump_step: 10
#   providers: [libass]
#   provider: libass

# color:
#   slot: primary
#   sample_radius: 0

# backups:
#   enabled: true
#   mode: sidecar
`

const fullTemplate = `# subtag configuration - Full Template
# See: https://github.com/yaklabco/subtag

# Extra tag spellings that mean the same directive. \c/\1c and \fr/\frz
# are always treated as one.
aliases: []

# Undo steps kept per script
undo_limit: 100

# File patterns to skip (glob patterns)
ignore: []

# Seek helpers
seek:
  # Frames moved by a fast jump
  fast_jump_step: 10
  # Subtitle renderers to cycle through
  providers:
    - libass
  provider: libass

# Color commands
color:
  # Color written by default: primary, secondary, outline or shadow
  slot: primary
  # Average a square of pixels of this radius when sampling a frame
  sample_radius: 0

# Backups written next to a script before it is overwritten
backups:
  enabled: true
  mode: sidecar
`
