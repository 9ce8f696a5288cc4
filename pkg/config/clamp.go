package config

import (
	"github.com/matzehuels/starposter/pkg/rng"
)

// Slider describes the range and step of one interactive control.
type Slider struct {
	Min, Max, Step float64
}

// Clamp pins v into the slider range.
func (s Slider) Clamp(v float64) float64 {
	return max(s.Min, min(s.Max, v))
}

// Sliders used by the interactive panel.
var (
	StarsSlider      = Slider{Min: 1, Max: 100, Step: 1}
	SizeSlider       = Slider{Min: 0.1, Max: 2.0, Step: 0.05}
	WobbleSlider     = Slider{Min: 0, Max: MaxWobble, Step: 0.01}
	InnerRatioSlider = Slider{Min: 0.1, Max: 0.9, Step: 0.05}
	AlphaSlider      = Slider{Min: 0.05, Max: 1, Step: 0.05}
	InchesSlider     = Slider{Min: 4, Max: 16, Step: 1}
	SeedSlider       = Slider{Min: 0, Max: rng.MaxSeed, Step: 1}
)

// Clamp returns a copy of c with every slider-backed field pinned to its slider range
// and each min/max pair put back in order. Fields without a slider are unchanged.
func (c Config) Clamp() Config {
	c = c.Clone()
	c.Stars = int(StarsSlider.Clamp(float64(c.Stars)))
	c.SizeMin, c.SizeMax = clampPair(SizeSlider, c.SizeMin, c.SizeMax)
	c.WobbleMin, c.WobbleMax = clampPair(WobbleSlider, c.WobbleMin, c.WobbleMax)
	c.InnerRatioMin, c.InnerRatioMax = clampPair(InnerRatioSlider, c.InnerRatioMin, c.InnerRatioMax)
	c.AlphaMin, c.AlphaMax = clampPair(AlphaSlider, c.AlphaMin, c.AlphaMax)
	c.Width = int(InchesSlider.Clamp(float64(c.Width)))
	c.Height = int(InchesSlider.Clamp(float64(c.Height)))
	c.Seed = uint64(SeedSlider.Clamp(float64(c.Seed)))
	return c
}

// clampPair clamps both ends of a range slider. Dragging one handle past the other
// moves both, so the pair never inverts.
func clampPair(s Slider, lo, hi float64) (float64, float64) {
	lo, hi = s.Clamp(lo), s.Clamp(hi)
	if lo > hi {
		lo = hi
	}
	return lo, hi
}
