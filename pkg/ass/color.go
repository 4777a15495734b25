package ass

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a color or alpha value cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Color is an ASS color. A is transparency in ASS terms: 0 is opaque and
// 255 fully transparent.
type Color struct {
	R, G, B, A uint8
}

// ParseColor parses the override form &HBBGGRR&, the &HAABBGGRR& form used
// in style definitions, either without the ampersands or the H, and the
// HTML form #RRGGBB.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("%w %q: %w", ErrInvalidColor, s, err)
		}
		r, g, b := c.RGB255()
		return Color{R: r, G: g, B: b}, nil
	}

	digits := strings.TrimSuffix(strings.TrimPrefix(s, "&"), "&")
	digits = strings.TrimPrefix(strings.TrimPrefix(digits, "H"), "h")
	if digits == "" || len(digits) > 8 {
		return Color{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w %q: %w", ErrInvalidColor, s, err)
	}

	return Color{
		R: uint8(v),
		G: uint8(v >> 8),
		B: uint8(v >> 16),
		A: uint8(v >> 24),
	}, nil
}

// MustParseColor is ParseColor for constants; it panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColor converts any image color. Alpha is dropped; override color tags
// carry no transparency.
func FromColor(c color.Color) Color {
	cf, _ := colorful.MakeColor(c)
	r, g, b := cf.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// String formats the color as an override tag value, &HBBGGRR&.
func (c Color) String() string {
	return fmt.Sprintf("&H%02X%02X%02X&", c.B, c.G, c.R)
}

// StyleString formats the color with its alpha, &HAABBGGRR, as used in
// style lines.
func (c Color) StyleString() string {
	return fmt.Sprintf("&H%02X%02X%02X%02X", c.A, c.B, c.G, c.R)
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return c.Colorful().Hex()
}

// Colorful returns the color in go-colorful form for blending and distance
// calculations.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// ParseAlpha parses an alpha value written as &HAA&.
func ParseAlpha(s string) (uint8, error) {
	digits := strings.TrimSpace(s)
	digits = strings.TrimSuffix(strings.TrimPrefix(digits, "&"), "&")
	digits = strings.TrimPrefix(strings.TrimPrefix(digits, "H"), "h")
	if digits == "" {
		return 0, fmt.Errorf("%w alpha %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w alpha %q: %w", ErrInvalidColor, s, err)
	}
	return uint8(v), nil
}

// FormatAlpha formats an alpha value as &HAA&.
func FormatAlpha(a uint8) string {
	return fmt.Sprintf("&H%02X&", a)
}
