package sink

import (
	"github.com/matzehuels/starposter/pkg/geom"
	"github.com/matzehuels/starposter/pkg/scene"
)

// TightPad is the padding around the content box of a tight crop, in inches.
const TightPad = 0.1

// frame maps scene coordinates onto an output surface measured in units per inch.
// Both axes share one scale and the bounds are centered, so a 10×10 scene on a wide
// figure keeps its stars round. Output y grows downward.
type frame struct {
	width, height float64 // surface size in output units
	scale         float64
	offX, offY    float64
	bounds        geom.Rect
	unitsPerInch  float64
}

func newFrame(s *scene.Scene, unitsPerInch float64) frame {
	wIn, hIn := s.Size()
	b := s.Bounds()
	w, h := wIn*unitsPerInch, hIn*unitsPerInch
	scale := min(w/b.Width(), h/b.Height())
	return frame{
		width:        w,
		height:       h,
		scale:        scale,
		offX:         (w - b.Width()*scale) / 2,
		offY:         (h - b.Height()*scale) / 2,
		bounds:       b,
		unitsPerInch: unitsPerInch,
	}
}

// point maps a scene point to surface coordinates.
func (f frame) point(p geom.Point) (x, y float64) {
	return f.offX + (p.X-f.bounds.MinX)*f.scale, f.offY + (f.bounds.MaxY-p.Y)*f.scale
}

// rel maps a figure-relative position, origin bottom-left, to surface coordinates.
func (f frame) rel(rx, ry float64) (x, y float64) {
	return rx * f.width, (1 - ry) * f.height
}

// points converts a font size in points to surface units.
func (f frame) points(pt float64) float64 {
	return pt * f.unitsPerInch / 72
}

// polygon maps a polygon, dropping the closing vertex.
func (f frame) polygon(poly geom.Polygon) []geom.Point {
	n := len(poly)
	if poly.Closed() {
		n--
	}
	out := make([]geom.Point, n)
	for i := range n {
		out[i].X, out[i].Y = f.point(poly[i])
	}
	return out
}

// contentBox returns the surface-space box covering the canvas and every text,
// grown by TightPad and clipped to the surface. Stars do not widen it, so the box
// is the same for every seed. measure reports the width and height of a text in
// surface units.
func (f frame) contentBox(s *scene.Scene, measure func(scene.Text) (w, h float64)) geom.Rect {
	x0, y0 := f.point(geom.Point{X: f.bounds.MinX, Y: f.bounds.MaxY})
	x1, y1 := f.point(geom.Point{X: f.bounds.MaxX, Y: f.bounds.MinY})
	box := geom.Rect{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}

	for _, t := range s.Texts() {
		x, y := f.rel(t.RelX, t.RelY)
		w, h := measure(t)
		box.MinX = min(box.MinX, x-w/2)
		box.MinY = min(box.MinY, y-h/2)
		box.MaxX = max(box.MaxX, x+w/2)
		box.MaxY = max(box.MaxY, y+h/2)
	}

	box = box.Inset(-TightPad * f.unitsPerInch)
	box.MinX = max(0, box.MinX)
	box.MinY = max(0, box.MinY)
	box.MaxX = min(f.width, box.MaxX)
	box.MaxY = min(f.height, box.MaxY)
	return box
}
