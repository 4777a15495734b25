// Package cli provides the Cobra command structure for subtag.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/subtag/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root subtag command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "subtag",
		Short: "Edit override tags in ASS subtitle scripts",
		Long: `subtag sets override tags such as \c, \fs or \blur on subtitle events.

An edit addresses every selected event at the same visible character
position, rewrites the override block that governs that position or
inserts a new one, and keeps the cursor selection on its character.
Scripts are written atomically with an optional sidecar backup.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(
		newSetCommand(),
		newColorCommand(),
		newGetCommand(),
		newBlocksCommand(),
		newSeekCommand(),
		newRestoreCommand(),
		newConfigCommand(),
		newInitCommand(),
		newVersionCommand(info),
	)

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
