package sink

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/starposter/pkg/config"
	"github.com/matzehuels/starposter/pkg/errors"
	"github.com/matzehuels/starposter/pkg/fonts"
	"github.com/matzehuels/starposter/pkg/scene"
)

// DefaultDPI is the raster resolution used when no WithDPI option is given.
const DefaultDPI = 200.0

// PNGOption configures raster rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	dpi   float64
	tight bool
}

// WithDPI sets the raster resolution in dots per inch (default 200).
func WithDPI(dpi float64) PNGOption {
	return func(r *pngRenderer) { r.dpi = dpi }
}

// WithTight crops the image to the canvas and any text outside it, plus a 0.1
// inch pad.
func WithTight(tight bool) PNGOption {
	return func(r *pngRenderer) { r.tight = tight }
}

// RenderPNG rasterizes the scene and encodes it as PNG.
func RenderPNG(s *scene.Scene, opts ...PNGOption) ([]byte, error) {
	img, err := RenderImage(s, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}

// RenderImage rasterizes the scene. Without WithTight the image covers the whole
// figure: width and height in inches times the DPI.
func RenderImage(s *scene.Scene, opts ...PNGOption) (image.Image, error) {
	r := pngRenderer{dpi: DefaultDPI}
	for _, opt := range opts {
		opt(&r)
	}
	if r.dpi <= 0 || math.IsNaN(r.dpi) || math.IsInf(r.dpi, 0) {
		return nil, errors.New(errors.ErrCodeRender, "dpi must be positive, got %g", r.dpi)
	}

	f := newFrame(s, r.dpi)
	w, h := int(math.Round(f.width)), int(math.Round(f.height))
	if w < 1 || h < 1 || w > config.MaxRasterSide || h > config.MaxRasterSide {
		return nil, errors.New(errors.ErrCodeRender, "raster size %dx%d out of range", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(s.Background().NRGBA(1))
	dc.Clear()

	for _, sh := range s.Shapes() {
		pts := f.polygon(sh.Polygon)
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		dc.SetColor(sh.Color.NRGBA(sh.Alpha))
		dc.Fill()
	}

	measure, err := drawTexts(dc, f, s.Texts())
	if err != nil {
		return nil, err
	}

	img := dc.Image()
	if !r.tight {
		return img, nil
	}
	box := f.contentBox(s, measure)
	crop := image.Rect(
		int(math.Floor(box.MinX)), int(math.Floor(box.MinY)),
		int(math.Ceil(box.MaxX)), int(math.Ceil(box.MaxY)),
	)
	sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		return img, nil
	}
	return sub.SubImage(crop), nil
}

// drawTexts draws the overlays and returns a measuring function for the tight crop.
func drawTexts(dc *gg.Context, f frame, texts []scene.Text) (func(scene.Text) (float64, float64), error) {
	sizes := make(map[scene.Text][2]float64, len(texts))
	for _, t := range texts {
		face, err := fonts.Face(t.Bold, t.Size, f.unitsPerInch)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "load font")
		}
		dc.SetFontFace(face)
		dc.SetColor(t.Color.NRGBA(1))
		x, y := f.rel(t.RelX, t.RelY)
		dc.DrawStringAnchored(t.Content, x, y, 0.5, 0.5)

		tw, th := dc.MeasureString(t.Content)
		sizes[t] = [2]float64{tw, th}
	}
	return func(t scene.Text) (float64, float64) {
		sz := sizes[t]
		return sz[0], sz[1]
	}, nil
}
