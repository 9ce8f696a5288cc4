package geom

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/starposter/pkg/errors"
)

// MinPoints is the smallest point count that yields a star.
const MinPoints = 3

// StarSpec describes one star before jitter is applied.
type StarSpec struct {
	Center      Point
	OuterRadius float64 // > 0
	InnerRadius float64 // in (0, OuterRadius)
	Points      int     // >= MinPoints
	Wobble      float64 // fractional jitter magnitude, >= 0
}

// Validate checks the star invariants. It returns an INVALID_CONFIG error naming the
// first violated constraint.
func (s StarSpec) Validate() error {
	if s.Points < MinPoints {
		return errors.New(errors.ErrCodeInvalidConfig, "star needs at least %d points, got %d", MinPoints, s.Points)
	}
	if !s.Center.Finite() {
		return errors.New(errors.ErrCodeInvalidConfig, "star center must be finite, got (%g, %g)", s.Center.X, s.Center.Y)
	}
	if err := errors.ValidatePositive("outer radius", s.OuterRadius); err != nil {
		return err
	}
	if err := errors.ValidatePositive("inner radius", s.InnerRadius); err != nil {
		return err
	}
	if s.InnerRadius >= s.OuterRadius {
		return errors.New(errors.ErrCodeInvalidConfig, "inner radius %g must be smaller than outer radius %g", s.InnerRadius, s.OuterRadius)
	}
	if !finite(s.Wobble) || s.Wobble < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "wobble must be >= 0, got %g", s.Wobble)
	}
	return nil
}

// WobblePolicy selects how a radius is jittered.
//
// The two policies draw from different distributions and are not interchangeable:
// for the same wobble w, WobbleFull spreads radii over ±w while WobbleHalf spreads
// them over ±w/2.
type WobblePolicy int

const (
	// WobbleFull scales each radius by uniform(1-w, 1+w).
	WobbleFull WobblePolicy = iota
	// WobbleHalf scales each radius by 1 + w*(uniform(0,1) - 0.5).
	WobbleHalf
)

// String returns the configuration name of the policy.
func (p WobblePolicy) String() string {
	switch p {
	case WobbleFull:
		return "full"
	case WobbleHalf:
		return "half"
	default:
		return fmt.Sprintf("WobblePolicy(%d)", int(p))
	}
}

// ParseWobblePolicy converts a configuration name into a policy.
// The empty string selects WobbleFull.
func ParseWobblePolicy(s string) (WobblePolicy, error) {
	switch s {
	case "", "full":
		return WobbleFull, nil
	case "half":
		return WobbleHalf, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid wobble policy: %q (must be full or half)", s)
	}
}

// factor returns the multiplier applied to one radius.
func (p WobblePolicy) factor(w float64, r *rand.Rand) float64 {
	if w == 0 {
		return 1
	}
	switch p {
	case WobbleHalf:
		return 1 + w*(r.Float64()-0.5)
	default:
		return 1 - w + r.Float64()*2*w
	}
}

// BuildStar returns the closed star polygon for spec, drawing one jitter value per
// vertex from r. With zero wobble, r is not touched and may be nil.
//
// The result has exactly 2*spec.Points+1 vertices.
func BuildStar(spec StarSpec, policy WobblePolicy, r *rand.Rand) (Polygon, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if policy != WobbleFull && policy != WobbleHalf {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown wobble policy %v", policy)
	}
	if spec.Wobble > 0 && r == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "wobble %g requires a random generator", spec.Wobble)
	}

	n := 2 * spec.Points
	step := math.Pi / float64(spec.Points)
	poly := make(Polygon, 0, n+1)
	for i := range n {
		radius := spec.OuterRadius
		if i%2 == 1 {
			radius = spec.InnerRadius
		}
		radius *= policy.factor(spec.Wobble, r)

		angle := step * float64(i)
		poly = append(poly, Point{
			X: spec.Center.X + radius*math.Cos(angle),
			Y: spec.Center.Y + radius*math.Sin(angle),
		})
	}
	return append(poly, poly[0]), nil
}
