// Package frame loads still video frames and samples pixel colors from
// them for the color picker.
package frame

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/webp" // register WebP

	"github.com/yaklabco/subtag/pkg/ass"
	"github.com/yaklabco/subtag/pkg/fsutil"
)

// ErrOutOfBounds is returned when a sample point lies outside the image.
var ErrOutOfBounds = errors.New("point outside frame")

// Frame is a decoded still frame.
type Frame struct {
	image.Image

	// Format is the name the image was decoded as, such as "png".
	Format string
}

// Load decodes the image at path. PNG, JPEG, BMP and WebP are supported.
func Load(ctx context.Context, path string) (*Frame, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &Frame{Image: img, Format: format}, nil
}

// Sample returns the color of the pixel at x, y, counted from the top-left
// corner of the image bounds.
func Sample(img image.Image, x, y int) (ass.Color, error) {
	b := img.Bounds()
	pt := image.Pt(b.Min.X+x, b.Min.Y+y)
	if x < 0 || y < 0 || !pt.In(b) {
		return ass.Color{}, fmt.Errorf("%w: %d,%d not in %dx%d", ErrOutOfBounds, x, y, b.Dx(), b.Dy())
	}
	return ass.FromColor(img.At(pt.X, pt.Y)), nil
}

// SampleArea returns the average color of the square of the given radius
// around x, y, clipped to the image. A radius of 0 samples one pixel.
func SampleArea(img image.Image, x, y, radius int) (ass.Color, error) {
	if radius <= 0 {
		return Sample(img, x, y)
	}
	if _, err := Sample(img, x, y); err != nil {
		return ass.Color{}, err
	}

	b := img.Bounds()
	area := image.Rect(x-radius, y-radius, x+radius+1, y+radius+1).
		Add(b.Min).
		Intersect(b)

	var r, g, bl, n int
	for py := area.Min.Y; py < area.Max.Y; py++ {
		for px := area.Min.X; px < area.Max.X; px++ {
			c := ass.FromColor(img.At(px, py))
			r += int(c.R)
			g += int(c.G)
			bl += int(c.B)
			n++
		}
	}

	return ass.Color{
		R: uint8((r + n/2) / n),
		G: uint8((g + n/2) / n),
		B: uint8((bl + n/2) / n),
	}, nil
}
