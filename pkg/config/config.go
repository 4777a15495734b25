// Package config defines the configuration types for subtag.
// These are plain data structures; loading and merging live in
// internal/configloader.
package config

import (
	"fmt"
	"strings"

	"github.com/yaklabco/subtag/pkg/ass"
	"github.com/yaklabco/subtag/pkg/subs"
)

// BackupsConfig controls backup behavior when writing scripts.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// SeekConfig holds the settings of the seek helpers.
type SeekConfig struct {
	// FastJumpStep is the number of frames a fast jump moves.
	FastJumpStep int `yaml:"fast_jump_step"`

	// Providers is the list of subtitle renderers to cycle through.
	Providers []string `yaml:"providers"`

	// Provider is the renderer currently in use.
	Provider string `yaml:"provider"`

	// Keyframes is the default keyframe file.
	Keyframes string `yaml:"keyframes,omitempty"`
}

// ColorConfig holds the settings of the color commands.
type ColorConfig struct {
	// Slot is the color written when none is given: primary, secondary,
	// outline or shadow.
	Slot string `yaml:"slot"`

	// SampleRadius averages a square of pixels around the sample point.
	SampleRadius int `yaml:"sample_radius"`
}

// Config is the root configuration structure for subtag.
type Config struct {
	// Aliases lists extra families of tag spellings treated as one
	// directive, on top of the built-in ones.
	Aliases [][]string `yaml:"aliases"`

	// UndoLimit bounds the undo history kept per script.
	UndoLimit int `yaml:"undo_limit"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	Seek    SeekConfig    `yaml:"seek"`
	Color   ColorConfig   `yaml:"color"`
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options, not read from config files.

	// DryRun shows what would change without writing.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// NoBackups disables backups for this run.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		UndoLimit: 100,
		Seek: SeekConfig{
			FastJumpStep: 10,
			Providers:    []string{"libass"},
			Provider:     "libass",
		},
		Color: ColorConfig{
			Slot: string(SlotPrimary),
		},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means one worker per CPU
	}
}

// AliasTable returns the built-in tag aliases extended with the configured
// families.
func (c *Config) AliasTable() *ass.Aliases {
	a := ass.DefaultAliases()
	if c == nil {
		return a
	}
	for _, family := range c.Aliases {
		a.Add(family...)
	}
	return a
}

// BackupsEnabled reports whether scripts should be backed up before they
// are overwritten.
func (c *Config) BackupsEnabled() bool {
	return c != nil && c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != "none"
}

// Slot names one of the four colors of a line.
type Slot string

const (
	SlotPrimary   Slot = "primary"
	SlotSecondary Slot = "secondary"
	SlotOutline   Slot = "outline"
	SlotShadow    Slot = "shadow"
)

// Slots returns the slots in tag order.
func Slots() []Slot {
	return []Slot{SlotPrimary, SlotSecondary, SlotOutline, SlotShadow}
}

// ParseSlot parses a slot name or its number, 1 to 4.
func ParseSlot(s string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary", "1", "":
		return SlotPrimary, nil
	case "secondary", "2", "karaoke":
		return SlotSecondary, nil
	case "outline", "3", "border":
		return SlotOutline, nil
	case "shadow", "4", "back":
		return SlotShadow, nil
	default:
		return "", fmt.Errorf("unknown color slot %q (want primary, secondary, outline or shadow)", s)
	}
}

// Tag returns the override tag that sets the slot's color.
func (s Slot) Tag() string {
	switch s {
	case SlotSecondary:
		return `\2c`
	case SlotOutline:
		return `\3c`
	case SlotShadow:
		return `\4c`
	default:
		return `\c`
	}
}

// StyleField returns the style field holding the slot's default color.
func (s Slot) StyleField() string {
	switch s {
	case SlotSecondary:
		return subs.StyleSecondary
	case SlotOutline:
		return subs.StyleOutline
	case SlotShadow:
		return subs.StyleBack
	default:
		return subs.StylePrimary
	}
}
