// Package scene composes star fields into immutable, render-ready scenes.
//
// # Overview
//
// A [Scene] is the in-memory accumulation of filled shapes and text before
// rasterization. It is produced by a [Builder], which only supports appending; once
// [Builder.Build] freezes it, the scene cannot change and can be handed to any number
// of sinks, from any goroutine.
//
// [Compose] is the star field composer: it generates the palette, samples N star
// placements from one generator, builds each polygon with [geom.BuildStar] and fills
// it into a builder.
//
//	cfg := config.Default()
//	cfg.UseSeed, cfg.Seed = true, 7
//	s, err := scene.Compose(cfg, rng.New(cfg.Seed))
//	png, err := sink.RenderPNG(s)
//
// # Coordinates
//
// Scene coordinates are logical units inside [Scene.Bounds] with y pointing up. The
// aspect ratio is locked to 1:1: sinks use the same scale on both axes and center
// the bounds inside the figure.
package scene

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/geom"
	"github.com/matzehuels/starposter/pkg/palette"
)

// Shape is one filled polygon.
type Shape struct {
	Polygon geom.Polygon
	Color   palette.Color
	Alpha   float64
	Center  geom.Point
	Points  int     // star point count
	Wobble  float64 // wobble magnitude used for this star
}

// Text is a label anchored at a position relative to the figure: (0, 0) is the
// bottom-left corner and (1, 1) the top-right corner.
type Text struct {
	Content string
	RelX    float64
	RelY    float64
	Size    float64 // font size in points
	Bold    bool
	Color   palette.Color
}

// Scene is a frozen canvas. The zero value is not useful; use a Builder.
type Scene struct {
	bounds     geom.Rect
	width      float64 // figure width in inches
	height     float64 // figure height in inches
	background palette.Color
	shapes     []Shape
	texts      []Text

	palette palette.Palette
	seed    uint64
	policy  geom.WobblePolicy
}

// Bounds returns the logical coordinate range of the canvas.
func (s *Scene) Bounds() geom.Rect { return s.bounds }

// Size returns the figure size in inches.
func (s *Scene) Size() (width, height float64) { return s.width, s.height }

// Background returns the canvas color.
func (s *Scene) Background() palette.Color { return s.background }

// Len returns the number of filled shapes.
func (s *Scene) Len() int { return len(s.shapes) }

// Shapes returns the shapes in draw order. The slice must not be modified.
func (s *Scene) Shapes() []Shape { return s.shapes }

// Texts returns the text overlays in draw order. The slice must not be modified.
func (s *Scene) Texts() []Text { return s.texts }

// Palette returns the palette the scene was painted with.
func (s *Scene) Palette() palette.Palette { return s.palette }

// Seed returns the seed the scene was generated from.
func (s *Scene) Seed() uint64 { return s.seed }

// WobblePolicy returns the jitter policy used for every star.
func (s *Scene) WobblePolicy() geom.WobblePolicy { return s.policy }

// Fingerprint returns a SHA-256 hex digest over the scene content: bounds, shape
// vertices, colors, alpha and text. Two scenes with equal fingerprints render to
// identical output.
func (s *Scene) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	put := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}

	put(s.bounds.MinX)
	put(s.bounds.MinY)
	put(s.bounds.MaxX)
	put(s.bounds.MaxY)
	put(s.width)
	put(s.height)
	h.Write([]byte(s.background.Hex()))
	for _, sh := range s.shapes {
		for _, p := range sh.Polygon {
			put(p.X)
			put(p.Y)
		}
		h.Write([]byte(sh.Color.Hex()))
		put(sh.Alpha)
	}
	for _, t := range s.texts {
		h.Write([]byte(t.Content))
		put(t.RelX)
		put(t.RelY)
		put(t.Size)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Builder accumulates shapes for a scene. It is append-only and not safe for
// concurrent use.
type Builder struct {
	scene  *Scene
	frozen bool
}

// NewBuilder starts a scene with the given logical bounds and figure size in inches.
// The background defaults to white.
func NewBuilder(bounds geom.Rect, width, height float64) (*Builder, error) {
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "canvas bounds must span a positive area, got %+v", bounds)
	}
	if err := errors.ValidatePositive("figure width", width); err != nil {
		return nil, err
	}
	if err := errors.ValidatePositive("figure height", height); err != nil {
		return nil, err
	}
	return &Builder{scene: &Scene{
		bounds:     bounds,
		width:      width,
		height:     height,
		background: palette.White,
	}}, nil
}

// SetBackground sets the canvas color.
func (b *Builder) SetBackground(c palette.Color) error {
	if err := b.check(); err != nil {
		return err
	}
	b.scene.background = c
	return nil
}

// SetMeta records how the scene was generated. It does not affect drawing.
func (b *Builder) SetMeta(p palette.Palette, seed uint64, policy geom.WobblePolicy) error {
	if err := b.check(); err != nil {
		return err
	}
	b.scene.palette = p
	b.scene.seed = seed
	b.scene.policy = policy
	return nil
}

// Fill appends a filled polygon. Polygons with non-finite coordinates or colors, or
// fewer than three distinct vertices, are rejected with a RENDER_FAILED error.
func (b *Builder) Fill(shape Shape) error {
	if err := b.check(); err != nil {
		return err
	}
	if len(shape.Polygon) < 3 {
		return errors.New(errors.ErrCodeRender, "polygon needs at least 3 vertices, got %d", len(shape.Polygon))
	}
	if !shape.Polygon.Finite() {
		return errors.New(errors.ErrCodeRender, "polygon %d has non-finite coordinates", len(b.scene.shapes))
	}
	if !shape.Color.Finite() || math.IsNaN(shape.Alpha) || shape.Alpha < 0 || shape.Alpha > 1 {
		return errors.New(errors.ErrCodeRender, "polygon %d has invalid color or alpha %g", len(b.scene.shapes), shape.Alpha)
	}
	b.scene.shapes = append(b.scene.shapes, shape)
	return nil
}

// AddText appends a text overlay.
func (b *Builder) AddText(t Text) error {
	if err := b.check(); err != nil {
		return err
	}
	if t.Content == "" {
		return nil
	}
	if t.Size <= 0 {
		return errors.New(errors.ErrCodeRender, "text %q needs a positive font size", t.Content)
	}
	b.scene.texts = append(b.scene.texts, t)
	return nil
}

// Len returns the number of shapes filled so far.
func (b *Builder) Len() int { return len(b.scene.shapes) }

// Build freezes the builder and returns the scene. Further calls to Fill, AddText or
// SetBackground fail; Build itself returns the same scene every time.
func (b *Builder) Build() *Scene {
	b.frozen = true
	return b.scene
}

func (b *Builder) check() error {
	if b.frozen {
		return errors.New(errors.ErrCodeInternal, "scene is frozen")
	}
	return nil
}
