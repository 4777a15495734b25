package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/subtag/internal/logging"
	"github.com/yaklabco/subtag/internal/ui/pretty"
	"github.com/yaklabco/subtag/pkg/ass"
	"github.com/yaklabco/subtag/pkg/config"
	"github.com/yaklabco/subtag/pkg/scan"
	"github.com/yaklabco/subtag/pkg/subs"
	"github.com/yaklabco/subtag/pkg/tagedit"
)

// ErrTagNotSet is returned by get when neither the event nor its style
// sets the tag.
var ErrTagNotSet = errors.New("tag not set")

func newGetCommand() *cobra.Command {
	var line, pos int
	var tag string

	cmd := &cobra.Command{
		Use:   "get <file>",
		Short: "Print the value of a tag at a cursor position",
		Long: `Print the value of the tag in effect at a raw offset of an event.

Color tags that no override block sets fall back to the event style's
color, as a renderer would draw it.

Examples:
  subtag get ep01.ass --line 3 --pos 12 --tag '\c'
  subtag get ep01.ass --line 3 --tag '\fs'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args[0], line, scan.RawPos(pos), tag)
		},
	}

	cmd.Flags().IntVarP(&line, "line", "l", 0, "event number (required)")
	cmd.Flags().IntVarP(&pos, "pos", "p", 0, "offset into the event's raw text")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", `tag to read, e.g. '\c' (required)`)
	_ = cmd.MarkFlagRequired("line")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}

func runGet(cmd *cobra.Command, path string, number int, pos scan.RawPos, tag string) error {
	cfg, _, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}

	f, err := subs.Read(commandContext(cmd), path)
	if err != nil {
		return err
	}
	l, err := f.Event(number)
	if err != nil {
		return err
	}

	aliases := cfg.AliasTable()
	visible := scan.ToVisible(l.Text(), pos)
	p := tagedit.Parse(l, tagedit.WithAliases(aliases))

	if value, ok := p.Value(visible, tag); ok {
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	}

	for _, slot := range config.Slots() {
		if !aliases.Matches(slot.Tag(), tag) {
			continue
		}
		style, ok := f.Style(l.Style())
		if !ok {
			break
		}
		c, err := ass.ParseColor(style.Field(slot.StyleField()))
		if err != nil {
			return fmt.Errorf("style %s: %w", style.Name, err)
		}
		logging.Default().Debug("tag not set, using style color",
			logging.FieldTag, tag, logging.FieldLine, number)
		fmt.Fprintf(cmd.OutOrStdout(), "%s (from style %s)\n", c, style.Name)
		return nil
	}

	return fmt.Errorf("%w: %s at event %d offset %d", ErrTagNotSet, tag, number, pos)
}

func newBlocksCommand() *cobra.Command {
	var line int

	cmd := &cobra.Command{
		Use:   "blocks <file>",
		Short: "Show how an event's text splits into blocks",
		Long: `Show the blocks of an event: plain text, drawing commands, comments
and override blocks with their tags, each with its raw and visible offset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := subs.Read(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			l, err := f.Event(line)
			if err != nil {
				return err
			}

			colorMode, _ := cmd.Flags().GetString("color")
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
			fmt.Fprint(cmd.OutOrStdout(), styles.FormatBlocks(l.Text()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&line, "line", "l", 0, "event number (required)")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}
