package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/subtag/internal/logging"
	"github.com/yaklabco/subtag/pkg/ass"
	"github.com/yaklabco/subtag/pkg/batch"
	"github.com/yaklabco/subtag/pkg/config"
	"github.com/yaklabco/subtag/pkg/frame"
	"github.com/yaklabco/subtag/pkg/reporter"
	"github.com/yaklabco/subtag/pkg/runner"
	"github.com/yaklabco/subtag/pkg/scan"
	"github.com/yaklabco/subtag/pkg/subs"
)

// ErrFilesFailed is returned when one or more scripts could not be edited.
var ErrFilesFailed = errors.New("one or more files failed")

// editFlags are the flags shared by the commands that edit scripts.
type editFlags struct {
	lines   string
	active  int
	pos     int
	end     int
	format  string
	ignore  []string
	compact bool
}

func addEditFlags(cmd *cobra.Command, cfg *config.Config, flags *editFlags) {
	cmd.Flags().StringVarP(&flags.lines, "lines", "l", "", "events to edit, e.g. 1,3-4 (required)")
	cmd.Flags().IntVar(&flags.active, "active", 0, "event holding the cursor (default: first of --lines)")
	cmd.Flags().IntVarP(&flags.pos, "pos", "p", 0, "cursor offset into the active event's raw text")
	cmd.Flags().IntVar(&flags.end, "end", -1, "selection end offset (default: --pos)")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show changes without writing them")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "do not back up scripts before writing")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	_ = cmd.MarkFlagRequired("lines")
}

// tagRequest returns the tag and value to write once the configuration is
// known.
type tagRequest func(cfg *config.Config) (batch.Request, error)

func newSetCommand() *cobra.Command {
	var cfg config.Config
	flags := &editFlags{}
	var tag, value string

	cmd := &cobra.Command{
		Use:   "set <paths...>",
		Short: "Set an override tag on selected events",
		Long: `Set an override tag at the cursor position on every selected event.

The cursor is given as a raw offset into the active event. Every other
selected event is edited at the same visible position. An existing tag
governing that position is rewritten in place; otherwise a new override
block is inserted.

Examples:
  subtag set ep01.ass --lines 3 --pos 0 --tag '\blur' --value 0.75
  subtag set ep01.ass --lines 1,3-4 --active 3 --pos 6 --tag '\c' --value '&H00FF00&'
  subtag set . --lines 1 --tag '\b' --value 1 --dry-run --format diff`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args, &cfg, flags, func(*config.Config) (batch.Request, error) {
				return batch.Request{Description: "set " + tag, Tag: tag, Value: value}, nil
			})
		},
	}

	addEditFlags(cmd, &cfg, flags)
	cmd.Flags().StringVarP(&tag, "tag", "t", "", `tag to set, e.g. '\c' (required)`)
	cmd.Flags().StringVarP(&value, "value", "v", "", "value to write")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}

func newColorCommand() *cobra.Command {
	var cfg config.Config
	flags := &editFlags{}
	var slot, colorValue, framePath, at string

	cmd := &cobra.Command{
		Use:   "color <paths...>",
		Short: "Set a color on selected events, picked by value or from a frame",
		Long: `Set one of the four colors of the selected events at the cursor.

The color is given directly with --value, or sampled from a still frame
image (PNG, BMP, WebP, JPEG) at the pixel given by --at. The sample
radius from the configuration averages the pixels around that point.

Examples:
  subtag color ep01.ass --lines 2 --value '#FF8000'
  subtag color ep01.ass --lines 2-5 --slot outline --value '&H000000&'
  subtag color ep01.ass --lines 7 --frame shot.png --at 640,360`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args, &cfg, flags, func(resolved *config.Config) (batch.Request, error) {
				s := slot
				if s == "" {
					s = resolved.Color.Slot
				}
				parsed, err := config.ParseSlot(s)
				if err != nil {
					return batch.Request{}, err
				}

				c, err := pickColor(commandContext(cmd), colorValue, framePath, at, resolved.Color.SampleRadius)
				if err != nil {
					return batch.Request{}, err
				}

				logging.Default().Debug("picked color",
					logging.FieldTag, parsed.Tag(), logging.FieldValue, c.String())

				return batch.Request{
					Description: "set " + string(parsed) + " color",
					Tag:         parsed.Tag(),
					Value:       c.String(),
				}, nil
			})
		},
	}

	addEditFlags(cmd, &cfg, flags)
	cmd.Flags().StringVarP(&slot, "slot", "s", "", "color slot: primary, secondary, outline, shadow (default from config)")
	cmd.Flags().StringVarP(&colorValue, "value", "v", "", "color as &HBBGGRR&, &HAABBGGRR& or #RRGGBB")
	cmd.Flags().StringVar(&framePath, "frame", "", "still frame image to sample the color from")
	cmd.Flags().StringVar(&at, "at", "", "pixel to sample as X,Y")
	cmd.MarkFlagsMutuallyExclusive("value", "frame")
	cmd.MarkFlagsOneRequired("value", "frame")
	cmd.MarkFlagsRequiredTogether("frame", "at")

	return cmd
}

// pickColor parses value, or samples it from the frame image at point.
func pickColor(ctx context.Context, value, framePath, point string, radius int) (ass.Color, error) {
	if framePath == "" {
		c, err := ass.ParseColor(value)
		if err != nil {
			return ass.Color{}, fmt.Errorf("parse --value: %w", err)
		}
		return c, nil
	}

	x, y, err := parsePoint(point)
	if err != nil {
		return ass.Color{}, err
	}
	f, err := frame.Load(ctx, framePath)
	if err != nil {
		return ass.Color{}, err
	}
	c, err := frame.SampleArea(f, x, y, radius)
	if err != nil {
		return ass.Color{}, fmt.Errorf("sample %s: %w", framePath, err)
	}
	return c, nil
}

func runEdit(cmd *cobra.Command, args []string, cli *config.Config, flags *editFlags, request tagRequest) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	format, err := config.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	cli.Format = format
	cli.Ignore = flags.ignore

	lines, err := parseLineRange(flags.lines)
	if err != nil {
		return err
	}
	active := flags.active
	if active == 0 {
		active = lines[0]
	}
	start := scan.RawPos(flags.pos)
	end := start
	if flags.end >= 0 {
		end = scan.RawPos(flags.end)
	}

	cfg, workDir, err := loadConfig(cmd, cli)
	if err != nil {
		return err
	}

	req, err := request(cfg)
	if err != nil {
		return err
	}

	logger.Debug("starting edit",
		logging.FieldTag, req.Tag,
		logging.FieldValue, req.Value,
		logging.FieldLines, lines,
		logging.FieldDryRun, cfg.DryRun,
	)

	aliases := cfg.AliasTable()
	apply := func(ctx context.Context, f *subs.File) (*batch.Result, error) {
		sel, err := subs.SelectEvents(f, active, lines, start, end)
		if err != nil {
			return nil, err
		}
		history := subs.NewHistory(f.Lines(), cfg.UndoLimit)
		editor := batch.New(sel, history,
			batch.WithLogger(logging.FromContext(ctx)),
			batch.WithAliases(aliases),
		)
		return editor.SetTag(req)
	}

	r := runner.New(apply)
	r.Logger = logger

	result, err := r.Run(ctx, runner.OptionsFromConfig(cfg, workDir, args))
	if err != nil {
		return errors.Join(errors.New("edit run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Format,
		Color:       colorMode,
		ShowLines:   true,
		ShowSummary: true,
		DryRun:      cfg.DryRun,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasErrors() {
		return ErrFilesFailed
	}
	return nil
}
