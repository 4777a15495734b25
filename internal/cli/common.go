package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/subtag/internal/configloader"
	"github.com/yaklabco/subtag/internal/logging"
	"github.com/yaklabco/subtag/pkg/config"
)

var (
	// ErrInvalidRange is returned for a malformed --lines value.
	ErrInvalidRange = errors.New("invalid line range")

	// ErrInvalidPoint is returned for a malformed --at value.
	ErrInvalidPoint = errors.New("invalid point")

	// ErrConfigLoad wraps configuration loading and validation failures.
	ErrConfigLoad = errors.New("failed to load configuration")
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration for a command, with cli holding
// the values set by flags.
func loadConfig(cmd *cobra.Command, cli *config.Config) (*config.Config, string, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfigLoad, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, result.LoadedFrom)
	}

	return result.Config, workDir, nil
}

// parseLineRange parses a list of 1-based event numbers such as
// "1,3-5,8". Duplicates are dropped; order of first appearance is kept.
func parseLineRange(input string) ([]int, error) {
	var lines []int

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		from, to, isRange := strings.Cut(part, "-")
		first, err := parseLineNumber(from)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidRange, part, err)
		}
		last := first
		if isRange {
			last, err = parseLineNumber(to)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidRange, part, err)
			}
		}
		if last < first {
			return nil, fmt.Errorf("%w %q: end before start", ErrInvalidRange, part)
		}

		for n := first; n <= last; n++ {
			lines = append(lines, n)
		}
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w %q: no lines", ErrInvalidRange, input)
	}
	return lo.Uniq(lines), nil
}

func parseLineNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("line numbers start at 1, got %d", n)
	}
	return n, nil
}

// parsePoint parses "X,Y" pixel coordinates.
func parsePoint(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w %q: want X,Y", ErrInvalidPoint, s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if err := errors.Join(errX, errY); err != nil {
		return 0, 0, fmt.Errorf("%w %q: %w", ErrInvalidPoint, s, err)
	}
	return x, y, nil
}
