// Package config defines the configuration record for a poster render.
//
// A Config is a plain value: every field the control panel or CLI exposes lives here
// and nothing in the core reads presentation state. It can be built from [Default],
// decoded from a TOML or YAML file with [Load], and must pass [Config.Validate]
// before it reaches the composer.
//
// Validation rejects; it never corrects. The interactive panel is the only caller of
// [Config.Clamp], which pins values to the ranges its sliders allow.
package config

import (
	"fmt"
	"slices"

	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/geom"
	"github.com/matzehuels/starposter/pkg/palette"
	"github.com/matzehuels/starposter/pkg/rng"
)

// Default values of the classic pastel stars render.
const (
	DefaultStars       = 15
	DefaultSizeMin     = 0.3
	DefaultSizeMax     = 0.8
	DefaultWobbleMin   = 0.02
	DefaultWobbleMax   = 0.1
	DefaultInnerRatio  = 0.4
	DefaultAlpha       = 0.8
	DefaultWidth       = 8
	DefaultHeight      = 8
	DefaultMargin      = 0.5
	DefaultSeed        = 42
	DefaultDPI         = 200
	DefaultBackground  = "#FFFFFF"
	DefaultPaletteMode = string(palette.Fixed)
)

// Validation limits.
const (
	MaxStars     = 1000
	MaxWobble    = 0.5
	MaxPoints    = 24
	MinInches    = 1
	MaxInches    = 64
	MinDPI       = 36
	MaxDPI       = 1200
	maxTextRunes = 200

	// MaxRasterSide caps each side of a raster export, in pixels.
	MaxRasterSide = 12_000
)

// Config is the full set of inputs for one render.
type Config struct {
	Stars int `toml:"stars" yaml:"stars" json:"stars"`

	SizeMin float64 `toml:"size_min" yaml:"size_min" json:"size_min"`
	SizeMax float64 `toml:"size_max" yaml:"size_max" json:"size_max"`

	WobbleMin    float64 `toml:"wobble_min" yaml:"wobble_min" json:"wobble_min"`
	WobbleMax    float64 `toml:"wobble_max" yaml:"wobble_max" json:"wobble_max"`
	WobblePolicy string  `toml:"wobble_policy" yaml:"wobble_policy" json:"wobble_policy"`

	InnerRatioMin float64 `toml:"inner_ratio_min" yaml:"inner_ratio_min" json:"inner_ratio_min"`
	InnerRatioMax float64 `toml:"inner_ratio_max" yaml:"inner_ratio_max" json:"inner_ratio_max"`

	// Points lists the point counts a star may have; one is chosen uniformly per star.
	Points []int `toml:"points" yaml:"points" json:"points"`

	AlphaMin float64 `toml:"alpha_min" yaml:"alpha_min" json:"alpha_min"`
	AlphaMax float64 `toml:"alpha_max" yaml:"alpha_max" json:"alpha_max"`

	// Width and Height are the figure size in inches.
	Width  int `toml:"width" yaml:"width" json:"width"`
	Height int `toml:"height" yaml:"height" json:"height"`

	XLim   [2]float64 `toml:"x_lim" yaml:"x_lim" json:"x_lim"`
	YLim   [2]float64 `toml:"y_lim" yaml:"y_lim" json:"y_lim"`
	Margin float64    `toml:"margin" yaml:"margin" json:"margin"`

	Palette     string `toml:"palette" yaml:"palette" json:"palette"`
	PaletteSize int    `toml:"palette_size" yaml:"palette_size" json:"palette_size"`
	Background  string `toml:"background" yaml:"background" json:"background"`

	UseSeed bool   `toml:"use_seed" yaml:"use_seed" json:"use_seed"`
	Seed    uint64 `toml:"seed" yaml:"seed" json:"seed"`

	ShowText bool   `toml:"show_text" yaml:"show_text" json:"show_text"`
	Title    string `toml:"title" yaml:"title" json:"title,omitempty"`
	Subtitle string `toml:"subtitle" yaml:"subtitle" json:"subtitle,omitempty"`

	DPI   int  `toml:"dpi" yaml:"dpi" json:"dpi"`
	Tight bool `toml:"tight" yaml:"tight" json:"tight"`

	// NoVertices drops polygon vertices from the JSON manifest.
	NoVertices bool `toml:"no_vertices" yaml:"no_vertices" json:"no_vertices"`
}

// Default returns the classic pastel stars configuration.
func Default() Config {
	return Config{
		Stars:         DefaultStars,
		SizeMin:       DefaultSizeMin,
		SizeMax:       DefaultSizeMax,
		WobbleMin:     DefaultWobbleMin,
		WobbleMax:     DefaultWobbleMax,
		WobblePolicy:  geom.WobbleFull.String(),
		InnerRatioMin: DefaultInnerRatio,
		InnerRatioMax: DefaultInnerRatio,
		Points:        []int{5},
		AlphaMin:      DefaultAlpha,
		AlphaMax:      DefaultAlpha,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		XLim:          [2]float64{0, 10},
		YLim:          [2]float64{0, 10},
		Margin:        DefaultMargin,
		Palette:       DefaultPaletteMode,
		PaletteSize:   palette.DefaultSize,
		Background:    DefaultBackground,
		Seed:          DefaultSeed,
		DPI:           DefaultDPI,
		Tight:         true,
	}
}

// Bounds returns the logical canvas rectangle.
func (c Config) Bounds() geom.Rect {
	return geom.Rect{MinX: c.XLim[0], MinY: c.YLim[0], MaxX: c.XLim[1], MaxY: c.YLim[1]}
}

// Mode returns the parsed palette mode. Call Validate first.
func (c Config) Mode() palette.Mode {
	return palette.Mode(c.Palette)
}

// Policy returns the parsed wobble policy.
func (c Config) Policy() (geom.WobblePolicy, error) {
	return geom.ParseWobblePolicy(c.WobblePolicy)
}

// Poster reports whether the render carries a text overlay.
func (c Config) Poster() bool {
	return c.ShowText && (c.Title != "" || c.Subtitle != "")
}

// Clone returns a deep copy (Points is the only reference field).
func (c Config) Clone() Config {
	c.Points = slices.Clone(c.Points)
	return c
}

// Validate checks every field and returns the first violation as an INVALID_CONFIG
// (or INVALID_PALETTE) error.
func (c Config) Validate() error {
	if err := errors.ValidateIntRange("stars", c.Stars, 0, MaxStars); err != nil {
		return err
	}
	if err := errors.ValidatePositive("size_min", c.SizeMin); err != nil {
		return err
	}
	if err := errors.ValidateRange("size", c.SizeMin, c.SizeMax, c.SizeMin, c.SizeMax); err != nil {
		return err
	}
	if err := errors.ValidateRange("wobble", c.WobbleMin, c.WobbleMax, 0, MaxWobble); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if err := c.validateInnerRatio(); err != nil {
		return err
	}
	if err := c.validatePoints(); err != nil {
		return err
	}
	if err := errors.ValidateRange("alpha", c.AlphaMin, c.AlphaMax, 0, 1); err != nil {
		return err
	}
	if err := errors.ValidateIntRange("width", c.Width, MinInches, MaxInches); err != nil {
		return err
	}
	if err := errors.ValidateIntRange("height", c.Height, MinInches, MaxInches); err != nil {
		return err
	}
	if err := c.validateBounds(); err != nil {
		return err
	}
	if _, err := palette.ParseMode(c.Palette); err != nil {
		return err
	}
	if err := errors.ValidateIntRange("palette_size", c.PaletteSize, 1, palette.MaxSize); err != nil {
		return err
	}
	if _, err := palette.ParseHex(c.Background); err != nil {
		return err
	}
	if c.Seed > rng.MaxSeed {
		return errors.New(errors.ErrCodeInvalidConfig, "seed must be between 0 and %d, got %d", rng.MaxSeed, c.Seed)
	}
	if err := errors.ValidateIntRange("dpi", c.DPI, MinDPI, MaxDPI); err != nil {
		return err
	}
	if side := max(c.Width, c.Height) * c.DPI; side > MaxRasterSide {
		return errors.New(errors.ErrCodeInvalidConfig,
			"%dx%d in at %d dpi needs %d px per side, the limit is %d", c.Width, c.Height, c.DPI, side, MaxRasterSide)
	}
	if len([]rune(c.Title)) > maxTextRunes || len([]rune(c.Subtitle)) > maxTextRunes {
		return errors.New(errors.ErrCodeInvalidConfig, "title and subtitle are limited to %d characters", maxTextRunes)
	}
	return nil
}

func (c Config) validateInnerRatio() error {
	lo, hi := c.InnerRatioMin, c.InnerRatioMax
	if err := errors.ValidateRange("inner_ratio", lo, hi, 0, 1); err != nil {
		return err
	}
	// inner radius must stay strictly inside the outer radius
	if lo <= 0 || hi >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "inner_ratio must lie strictly between 0 and 1, got [%g, %g]", lo, hi)
	}
	return nil
}

func (c Config) validatePoints() error {
	if len(c.Points) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "points must list at least one point count")
	}
	for _, n := range c.Points {
		if n < geom.MinPoints || n > MaxPoints {
			return errors.New(errors.ErrCodeInvalidConfig, "point count must be between %d and %d, got %d", geom.MinPoints, MaxPoints, n)
		}
	}
	return nil
}

func (c Config) validateBounds() error {
	if err := c.validateAxis("x_lim", c.XLim); err != nil {
		return err
	}
	if err := c.validateAxis("y_lim", c.YLim); err != nil {
		return err
	}
	if c.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin must be >= 0, got %g", c.Margin)
	}
	return nil
}

func (c Config) validateAxis(name string, lim [2]float64) error {
	if err := errors.ValidateRange(name, lim[0], lim[1], lim[0], lim[1]); err != nil {
		return err
	}
	if lim[0] == lim[1] {
		return errors.New(errors.ErrCodeInvalidConfig, "%s must span a positive range, got [%g, %g]", name, lim[0], lim[1])
	}
	if 2*c.Margin >= lim[1]-lim[0] {
		return errors.New(errors.ErrCodeInvalidConfig, "margin %g leaves no room inside %s [%g, %g]", c.Margin, name, lim[0], lim[1])
	}
	return nil
}

// String renders a one-line summary for logs.
func (c Config) String() string {
	seed := "random"
	if c.UseSeed {
		seed = fmt.Sprint(c.Seed)
	}
	return fmt.Sprintf("stars=%d size=[%g,%g] wobble=[%g,%g] palette=%s seed=%s %dx%din@%ddpi",
		c.Stars, c.SizeMin, c.SizeMax, c.WobbleMin, c.WobbleMax, c.Palette, seed, c.Width, c.Height, c.DPI)
}
