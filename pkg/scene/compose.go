package scene

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/starposter/pkg/config"
	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/geom"
	"github.com/matzehuels/starposter/pkg/palette"
	"github.com/matzehuels/starposter/pkg/rng"
)

// Text overlay placement, as fractions of the figure.
const (
	TitleX, TitleY       = 0.5, 0.94
	SubtitleX, SubtitleY = 0.5, 0.90
	TitleSize            = 28.0
	SubtitleSize         = 14.0
)

var textColor = palette.Color{} // black

// Compose builds a star field from cfg, drawing every random value from r.
//
// Draw order per render is fixed: the palette first, then for each star the center
// (x, y), outer radius, inner ratio, point count, wobble, color, alpha and finally
// the per-vertex jitter. This keeps a seed stable across versions that only change
// sinks.
//
// cfg must already be valid; Compose does not clamp. A star that fails validation
// aborts the render with its INVALID_CONFIG error, and a non-finite shape aborts it
// with RENDER_FAILED. No partial scene is returned in either case.
func Compose(cfg config.Config, r *rand.Rand) (*Scene, error) {
	return ComposeSeeded(cfg, r, cfg.Seed)
}

// ComposeSeeded is Compose with an explicit seed recorded on the scene, for callers
// that drew a fresh seed themselves.
func ComposeSeeded(cfg config.Config, r *rand.Rand, seed uint64) (*Scene, error) {
	if r == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "compose requires a random generator")
	}
	if len(cfg.Points) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "points must list at least one point count")
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	bg, err := palette.ParseHex(cfg.Background)
	if err != nil {
		return nil, err
	}

	b, err := NewBuilder(cfg.Bounds(), float64(cfg.Width), float64(cfg.Height))
	if err != nil {
		return nil, err
	}

	pal, err := palette.Generate(cfg.PaletteSize, cfg.Mode(), r)
	if err != nil {
		return nil, err
	}

	if err := b.SetBackground(bg); err != nil {
		return nil, err
	}
	if err := b.SetMeta(pal, seed, policy); err != nil {
		return nil, err
	}

	area := cfg.Bounds().Inset(cfg.Margin)
	for i := range cfg.Stars {
		shape, err := placeStar(cfg, area, pal, policy, r)
		if err != nil {
			return nil, fmt.Errorf("star %d: %w", i, err)
		}
		if err := b.Fill(shape); err != nil {
			return nil, fmt.Errorf("star %d: %w", i, err)
		}
	}

	if cfg.ShowText {
		if err := addOverlay(b, cfg); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

func placeStar(cfg config.Config, area geom.Rect, pal palette.Palette, policy geom.WobblePolicy, r *rand.Rand) (Shape, error) {
	center := geom.Point{
		X: rng.Uniform(r, area.MinX, area.MaxX),
		Y: rng.Uniform(r, area.MinY, area.MaxY),
	}
	outer := rng.Uniform(r, cfg.SizeMin, cfg.SizeMax)
	ratio := rng.Uniform(r, cfg.InnerRatioMin, cfg.InnerRatioMax)
	points := cfg.Points[0]
	if len(cfg.Points) > 1 {
		points = cfg.Points[r.IntN(len(cfg.Points))]
	}
	wobble := rng.Uniform(r, cfg.WobbleMin, cfg.WobbleMax)
	color := pal.Pick(r)
	alpha := rng.Uniform(r, cfg.AlphaMin, cfg.AlphaMax)

	poly, err := geom.BuildStar(geom.StarSpec{
		Center:      center,
		OuterRadius: outer,
		InnerRadius: outer * ratio,
		Points:      points,
		Wobble:      wobble,
	}, policy, r)
	if err != nil {
		return Shape{}, err
	}
	return Shape{Polygon: poly, Color: color, Alpha: alpha, Center: center, Points: points, Wobble: wobble}, nil
}

func addOverlay(b *Builder, cfg config.Config) error {
	if err := b.AddText(Text{
		Content: cfg.Title, RelX: TitleX, RelY: TitleY,
		Size: TitleSize, Bold: true, Color: textColor,
	}); err != nil {
		return err
	}
	return b.AddText(Text{
		Content: cfg.Subtitle, RelX: SubtitleX, RelY: SubtitleY,
		Size: SubtitleSize, Color: textColor,
	})
}
