package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/subtag/pkg/ass"
	"github.com/yaklabco/subtag/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "seek.fast_jump_step").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, diff", cfg.Format)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.UndoLimit < 0 {
		result.fail("undo_limit", cfg.UndoLimit, "undo_limit must be >= 0 (0 means the default)")
	}
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.fail("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	validateSeek(cfg, result)
	validateColor(cfg, result)
	validateAliases(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateSeek(cfg *config.Config, result *ValidationResult) {
	if cfg.Seek.FastJumpStep <= 0 {
		result.fail("seek.fast_jump_step", cfg.Seek.FastJumpStep, "fast_jump_step must be > 0")
	}
	if cfg.Seek.Provider != "" && len(cfg.Seek.Providers) > 0 && !slices.Contains(cfg.Seek.Providers, cfg.Seek.Provider) {
		result.warn("seek.provider", cfg.Seek.Provider,
			"provider %q is not in seek.providers; cycling starts from the first one", cfg.Seek.Provider)
	}
}

func validateColor(cfg *config.Config, result *ValidationResult) {
	if _, err := config.ParseSlot(cfg.Color.Slot); err != nil {
		result.fail("color.slot", cfg.Color.Slot, "%v", err)
	}
	if cfg.Color.SampleRadius < 0 {
		result.fail("color.sample_radius", cfg.Color.SampleRadius, "sample_radius must be >= 0")
	}
}

func validateAliases(cfg *config.Config, result *ValidationResult) {
	for i, family := range cfg.Aliases {
		field := fmt.Sprintf("aliases[%d]", i)
		for _, name := range family {
			if !strings.HasPrefix(name, `\`) || len(name) < 2 {
				result.fail(field, name, `tag spelling %q must start with a backslash`, name)
			} else if !ass.IsKnown(name) {
				result.warn(field, name, "tag %q is not a known override tag", name)
			}
		}
		if len(family) < 2 {
			result.warn(field, family, "alias family with fewer than two spellings has no effect")
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
