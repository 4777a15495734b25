package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/subtag/pkg/config"
	"github.com/yaklabco/subtag/pkg/seek"
)

// ErrNoKeyframes is returned by seek keyframe when no keyframe file is
// given or configured.
var ErrNoKeyframes = errors.New("no keyframe file (use --keyframes or seek.keyframes)")

func newSeekCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seek",
		Short: "Compute seek targets for a player",
		Long: `Compute the frame a player should seek to, or the renderer to switch to.

Each subcommand prints a single value, meant for player scripts and
editor integrations.`,
	}

	cmd.AddCommand(
		newSeekKeyframeCommand(),
		newSeekJumpCommand(),
		newSeekProviderCommand(),
	)

	return cmd
}

type videoFlags struct {
	frame  int
	frames int
}

func (v *videoFlags) add(cmd *cobra.Command) {
	cmd.Flags().IntVar(&v.frame, "frame", 0, "current 0-based frame")
	cmd.Flags().IntVar(&v.frames, "frames", 0, "number of frames in the video (0 for unbounded)")
}

func (v *videoFlags) video() seek.Video {
	return seek.Video{Frame: v.frame, FrameCount: v.frames}
}

func newSeekKeyframeCommand() *cobra.Command {
	var video videoFlags
	var keyframes string
	var prev bool

	cmd := &cobra.Command{
		Use:   "keyframe",
		Short: "Print the next or previous keyframe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			path := keyframes
			if path == "" {
				path = cfg.Seek.Keyframes
			}
			if path == "" {
				return ErrNoKeyframes
			}

			kf, err := seek.LoadKeyframes(commandContext(cmd), path)
			if err != nil {
				return err
			}

			target := video.video().NextKeyframe(kf)
			if prev {
				target = video.video().PrevKeyframe(kf)
			}
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}

	video.add(cmd)
	cmd.Flags().StringVarP(&keyframes, "keyframes", "k", "", "keyframe file (default from seek.keyframes)")
	cmd.Flags().BoolVar(&prev, "prev", false, "seek backward")

	return cmd
}

func newSeekJumpCommand() *cobra.Command {
	var video videoFlags
	var step int
	var back bool

	cmd := &cobra.Command{
		Use:   "jump",
		Short: "Print the frame a fast jump lands on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli := &config.Config{}
			if cmd.Flags().Changed("step") {
				cli.Seek.FastJumpStep = step
			}
			cfg, _, err := loadConfig(cmd, cli)
			if err != nil {
				return err
			}

			n := cfg.Seek.FastJumpStep
			if back {
				n = -n
			}
			fmt.Fprintln(cmd.OutOrStdout(), video.video().FastJump(n))
			return nil
		},
	}

	video.add(cmd)
	cmd.Flags().IntVar(&step, "step", 0, "frames to move (default from seek.fast_jump_step)")
	cmd.Flags().BoolVar(&back, "back", false, "jump backward")

	return cmd
}

func newSeekProviderCommand() *cobra.Command {
	var current string

	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Print the next subtitle renderer in the cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("current") {
				current = cfg.Seek.Provider
			}
			next, err := seek.NextProvider(cfg.Seek.Providers, current)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "renderer in use (default from seek.provider)")

	return cmd
}
