package frame_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/yaklabco/subtag/pkg/ass"
	"github.com/yaklabco/subtag/pkg/frame"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := range 3 {
		for x := range 4 {
			img.Set(x, y, color.RGBA{R: 0xFF, A: 0xFF})
		}
	}
	img.Set(2, 1, color.RGBA{G: 0x80, B: 0xFF, A: 0xFF})
	return img
}

func TestSample(t *testing.T) {
	t.Parallel()

	img := testImage()

	c, err := frame.Sample(img, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, ass.Color{G: 0x80, B: 0xFF}, c)
	assert.Equal(t, "&HFF8000&", c.String())

	c, err = frame.Sample(img, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, ass.Color{R: 0xFF}, c)

	for _, pt := range []image.Point{{-1, 0}, {4, 0}, {0, 3}} {
		_, err := frame.Sample(img, pt.X, pt.Y)
		require.ErrorIs(t, err, frame.ErrOutOfBounds)
	}
}

func TestSampleOffsetBounds(t *testing.T) {
	t.Parallel()

	img := testImage().SubImage(image.Rect(2, 1, 4, 3))

	c, err := frame.Sample(img, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, ass.Color{G: 0x80, B: 0xFF}, c)

	_, err = frame.Sample(img, 2, 0)
	require.ErrorIs(t, err, frame.ErrOutOfBounds)
}

func TestSampleArea(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	img.Set(1, 0, color.RGBA{B: 0xFF, A: 0xFF})

	c, err := frame.SampleArea(img, 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, ass.Color{R: 0x80, B: 0x80}, c)

	c, err = frame.SampleArea(img, 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, ass.Color{B: 0xFF}, c)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	img := testImage()

	tests := []struct {
		name   string
		file   string
		encode func(*os.File) error
	}{
		{name: "png", file: "frame.png", encode: func(f *os.File) error { return png.Encode(f, img) }},
		{name: "bmp", file: "frame.bmp", encode: func(f *os.File) error { return bmp.Encode(f, img) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(dir, tt.file)
			f, err := os.Create(path)
			require.NoError(t, err)
			require.NoError(t, tt.encode(f))
			require.NoError(t, f.Close())

			fr, err := frame.Load(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.name, fr.Format)

			c, err := frame.Sample(fr, 2, 1)
			require.NoError(t, err)
			assert.Equal(t, ass.Color{G: 0x80, B: 0xFF}, c)
		})
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := frame.Load(context.Background(), path)
	require.Error(t, err)
}
