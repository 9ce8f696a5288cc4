// Package palette generates the colors a poster is painted with.
//
// HSV modes sample a hue uniformly over the full circle and draw saturation and value
// from a mode-specific range. The fixed mode returns a hard-coded pastel table and
// never touches the generator.
//
//	r := rng.New(42)
//	p, err := palette.Generate(6, palette.Pastel, r)
//
// The generator is shared with the star composer, so the palette must be generated
// first and from the same generator for a seed to reproduce the whole scene.
package palette

import (
	"math/rand/v2"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/starposter/pkg/errors"
)

// DefaultSize is the number of colors in a palette unless configured otherwise.
const DefaultSize = 6

// MaxSize bounds the palette size accepted at the configuration boundary.
const MaxSize = 64

// Mode names a color sampling strategy.
type Mode string

const (
	Pastel Mode = "pastel"
	Vivid  Mode = "vivid"
	Mixed  Mode = "mixed"
	Fixed  Mode = "fixed"
)

// Range is a closed interval used for saturation and value sampling.
type Range struct {
	Min, Max float64
}

// Contains reports whether v lies in the interval, allowing tol of slack at both ends.
func (r Range) Contains(v, tol float64) bool {
	return v >= r.Min-tol && v <= r.Max+tol
}

// hsvRanges holds saturation and value ranges per HSV mode.
var hsvRanges = map[Mode]struct{ Sat, Val Range }{
	Pastel: {Sat: Range{0.2, 0.4}, Val: Range{0.9, 1.0}},
	Vivid:  {Sat: Range{0.8, 1.0}, Val: Range{0.8, 1.0}},
	Mixed:  {Sat: Range{0.4, 1.0}, Val: Range{0.6, 1.0}},
}

// fixedTable is the pastel palette used by Fixed.
var fixedTable = []string{
	"#FFB3BA", // pink
	"#FFDFBA", // orange
	"#FFFFBA", // yellow
	"#BAFFC9", // green
	"#BAE1FF", // blue
	"#E2BAFF", // purple
}

// Modes returns all supported modes in display order.
func Modes() []Mode {
	return []Mode{Pastel, Vivid, Mixed, Fixed}
}

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !slices.Contains(Modes(), m) {
		return "", errors.New(errors.ErrCodeInvalidPalette, "invalid palette mode: %q (must be one of: pastel, vivid, mixed, fixed)", s)
	}
	return m, nil
}

// SaturationRange returns the saturation interval sampled by an HSV mode.
func (m Mode) SaturationRange() (Range, bool) {
	r, ok := hsvRanges[m]
	return r.Sat, ok
}

// ValueRange returns the value interval sampled by an HSV mode.
func (m Mode) ValueRange() (Range, bool) {
	r, ok := hsvRanges[m]
	return r.Val, ok
}

// Next returns the mode following m in display order, wrapping around.
func (m Mode) Next() Mode {
	modes := Modes()
	i := slices.Index(modes, m)
	return modes[(i+1)%len(modes)]
}

// Palette is an ordered, read-only list of colors.
type Palette []Color

// Hex returns the colors as "#rrggbb" strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}

// Pick returns a uniformly chosen color.
func (p Palette) Pick(r *rand.Rand) Color {
	return p[r.IntN(len(p))]
}

// Generate returns k colors for mode. HSV modes draw three values per color from r
// (hue, saturation, value). Fixed cycles through the built-in table and ignores r.
func Generate(k int, mode Mode, r *rand.Rand) (Palette, error) {
	if k < 1 || k > MaxSize {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "palette size must be between 1 and %d, got %d", MaxSize, k)
	}

	if mode == Fixed {
		out := make(Palette, k)
		for i := range out {
			c, err := ParseHex(fixedTable[i%len(fixedTable)])
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	}

	ranges, ok := hsvRanges[mode]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPalette, "invalid palette mode: %q", mode)
	}
	if r == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "palette mode %q requires a random generator", mode)
	}

	out := make(Palette, k)
	for i := range out {
		h := r.Float64()
		s := sample(r, ranges.Sat)
		v := sample(r, ranges.Val)
		out[i] = Color{colorful.Hsv(h*360, s, v)}
	}
	return out, nil
}

func sample(r *rand.Rand, rg Range) float64 {
	return rg.Min + r.Float64()*(rg.Max-rg.Min)
}
