// Package geom builds the star polygons that make up a poster.
//
// # Stars
//
// [BuildStar] places 2×Points vertices at equal angular steps of π/Points around a
// center, starting at angle 0. Even vertices sit on the outer radius, odd vertices on
// the inner radius, and each radius is jittered by the configured [WobblePolicy]. The
// returned [Polygon] is closed: its last point repeats the first.
//
//	spec := geom.StarSpec{
//	    Center:      geom.Point{X: 5, Y: 5},
//	    OuterRadius: 0.8,
//	    InnerRadius: 0.32,
//	    Points:      5,
//	    Wobble:      0.05,
//	}
//	poly, err := geom.BuildStar(spec, geom.WobbleFull, rng.New(42))
//
// Invalid specs (fewer than three points, inner radius not below the outer radius,
// non-positive radii, negative wobble) are rejected with an INVALID_CONFIG error
// rather than producing a degenerate shape.
//
// Coordinates are logical scene units with y pointing up; sinks flip the axis when
// they rasterize.
package geom

import "math"

// Point is a 2D coordinate in scene units.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return finite(p.X) && finite(p.Y)
}

// Polygon is an ordered, closed loop of points. It is never modified after
// [BuildStar] returns it.
type Polygon []Point

// Closed reports whether the polygon repeats its first vertex at the end.
func (p Polygon) Closed() bool {
	return len(p) > 1 && p[0] == p[len(p)-1]
}

// Finite reports whether every vertex is finite.
func (p Polygon) Finite() bool {
	for _, pt := range p {
		if !pt.Finite() {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned bounding box of the polygon.
// An empty polygon returns a zero Rect.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{MinX: p[0].X, MinY: p[0].Y, MaxX: p[0].X, MaxY: p[0].Y}
	for _, pt := range p[1:] {
		r.MinX = min(r.MinX, pt.X)
		r.MinY = min(r.MinY, pt.Y)
		r.MaxX = max(r.MaxX, pt.X)
		r.MaxY = max(r.MaxY, pt.Y)
	}
	return r
}

// Rect is an axis-aligned rectangle in scene units.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Inset shrinks the rectangle by m on every side.
func (r Rect) Inset(m float64) Rect {
	return Rect{MinX: r.MinX + m, MinY: r.MinY + m, MaxX: r.MaxX - m, MaxY: r.MaxY - m}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
