// Package seek computes the frame to seek to for the keyframe and fast
// jump commands, and the next subtitle renderer in a cycle.
//
// Nothing here touches video. Callers pass the current frame, the frame
// count and the configured step explicitly.
package seek

import (
	"errors"

	"github.com/samber/lo"
)

// ErrNoProviders is returned by NextProvider for an empty provider list.
var ErrNoProviders = errors.New("no subtitle providers configured")

// Video is the playback state a seek starts from.
type Video struct {
	// Frame is the current 0-based frame.
	Frame int

	// FrameCount is the number of frames in the video.
	FrameCount int
}

// Clamp limits frame to the frames of the video.
func (v Video) Clamp(frame int) int {
	if v.FrameCount <= 0 {
		return max(frame, 0)
	}
	return min(max(frame, 0), v.FrameCount-1)
}

// NextKeyframe returns the first keyframe after the current frame, or the
// last frame of the video when there is none.
func (v Video) NextKeyframe(kf Keyframes) int {
	for _, k := range kf {
		if k >= v.Frame+1 {
			return v.Clamp(k)
		}
	}
	return v.Clamp(v.FrameCount - 1)
}

// PrevKeyframe returns the last keyframe before the current frame. With no
// keyframes it returns 0; when the current frame is at or before the first
// keyframe it returns that keyframe.
func (v Video) PrevKeyframe(kf Keyframes) int {
	if len(kf) == 0 {
		return 0
	}

	i := kf.lowerBound(v.Frame)
	if i > 0 {
		i--
	}
	return v.Clamp(kf[i])
}

// FastJump moves step frames forward, or backward when step is negative.
func (v Video) FastJump(step int) int {
	return v.Clamp(v.Frame + step)
}

// NextProvider returns the provider after current in providers, wrapping
// around. An unknown current selects the first provider.
func NextProvider(providers []string, current string) (string, error) {
	if len(providers) == 0 {
		return "", ErrNoProviders
	}

	i := lo.IndexOf(providers, current)
	return providers[(i+1)%len(providers)], nil
}
