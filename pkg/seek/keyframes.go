package seek

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/subtag/pkg/fsutil"
)

const keyframeHeader = "# keyframe format v1"

// Keyframes is a sorted list of distinct keyframe numbers.
type Keyframes []int

// NewKeyframes sorts frames and drops duplicates and negative numbers.
func NewKeyframes(frames []int) Keyframes {
	kf := slices.DeleteFunc(slices.Clone(frames), func(f int) bool { return f < 0 })
	slices.Sort(kf)
	return slices.Compact(kf)
}

// lowerBound returns the index of the first keyframe >= frame.
func (kf Keyframes) lowerBound(frame int) int {
	i, _ := slices.BinarySearch(kf, frame)
	return i
}

// ParseKeyframes reads a keyframe list. The v1 keyframe format, a header
// line, an fps line and one frame number per line, is accepted, as is a bare
// list of numbers. Blank lines and # comments are ignored.
func ParseKeyframes(r io.Reader) (Keyframes, error) {
	var frames []int

	sc := bufio.NewScanner(r)
	for row := 1; sc.Scan(); row++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "fps ") {
			continue
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("keyframes line %d: %w", row, err)
		}
		frames = append(frames, n)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read keyframes: %w", err)
	}

	return NewKeyframes(frames), nil
}

// LoadKeyframes reads a keyframe file.
func LoadKeyframes(ctx context.Context, path string) (Keyframes, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	kf, err := ParseKeyframes(strings.NewReader(string(content)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return kf, nil
}

// Format writes the keyframes in v1 keyframe format.
func (kf Keyframes) Format(w io.Writer) error {
	var b strings.Builder
	b.WriteString(keyframeHeader + "\nfps 0\n")
	for _, k := range kf {
		b.WriteString(strconv.Itoa(k))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
