package palette

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/starposter/pkg/errors"
)

// Color is an RGB color with channels in [0, 1]. Opacity is stored on the shape
// that uses the color, not here.
type Color struct {
	colorful.Color
}

// White is the default poster background.
var White = Color{colorful.Color{R: 1, G: 1, B: 1}}

// ParseHex parses "#rgb" or "#rrggbb" (case-insensitive).
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q", s)
	}
	return Color{c}, nil
}

// HSV returns hue in [0, 1) and saturation and value in [0, 1].
func (c Color) HSV() (h, s, v float64) {
	deg, s, v := c.Hsv()
	return deg / 360, s, v
}

// Finite reports whether every channel is a finite number.
func (c Color) Finite() bool {
	for _, ch := range []float64{c.R, c.G, c.B} {
		if math.IsNaN(ch) || math.IsInf(ch, 0) {
			return false
		}
	}
	return true
}

// NRGBA converts the color to an image/color value with the given opacity in [0, 1].
// The result is not premultiplied.
func (c Color) NRGBA(alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

// MarshalText encodes the color as "#rrggbb".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes "#rrggbb".
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
