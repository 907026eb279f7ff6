package shapefield

import (
	"math"
	"sort"
)

// Bezier curve primitives used by path flattening, bounding boxes, and
// arc length measurement. The adaptive subdivision approach follows
// kurbo-style flatness metrics.

// Rect represents an axis-aligned rectangle with Min at the top-left
// (minimum coordinates) and Max at the bottom-right.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points, normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// expand grows the rectangle to include the point.
func (r Rect) expand(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// QuadBez represents a quadratic Bezier curve: start P0, control P1,
// end P2.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t in [0, 1].
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5 using de Casteljau's algorithm.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	p01 := q.P0.Lerp(q.P1, 0.5)
	p12 := q.P1.Lerp(q.P2, 0.5)
	mid := p01.Lerp(p12, 0.5)
	return QuadBez{P0: q.P0, P1: p01, P2: mid},
		QuadBez{P0: mid, P1: p12, P2: q.P2}
}

// flatness returns the squared distance from the control point to the
// chord midpoint, the standard quadratic flatness test.
func (q QuadBez) flatness() float64 {
	mid := q.P0.Lerp(q.P2, 0.5)
	return q.P1.Sub(mid).LengthSquared()
}

// Extrema returns parameter values in (0, 1) where the derivative of
// either coordinate is zero. Used for tight bounding boxes.
func (q QuadBez) Extrema() []float64 {
	var result []float64

	// The derivative is linear: B'(t) = 2[(P1-P0) + t(P2-2P1+P0)].
	d0 := q.P1.Sub(q.P0)
	dd := q.P2.Sub(q.P1).Sub(d0)

	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			result = append(result, t)
		}
	}

	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	bbox := NewRect(q.P0, q.P2)
	for _, t := range q.Extrema() {
		bbox = bbox.expand(q.Eval(t))
	}
	return bbox
}

// CubicBez represents a cubic Bezier curve: start P0, controls P1 and
// P2, end P3.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t in [0, 1].
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t
	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 using de Casteljau's algorithm.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)
	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// flatness returns the maximum squared control-point deviation from the
// chord.
func (c CubicBez) flatness() float64 {
	ux := 3.0*c.P1.X - 2.0*c.P0.X - c.P3.X
	uy := 3.0*c.P1.Y - 2.0*c.P0.Y - c.P3.Y
	vx := 3.0*c.P2.X - c.P0.X - 2.0*c.P3.X
	vy := 3.0*c.P2.Y - c.P0.Y - 2.0*c.P3.Y
	return math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}

// Extrema returns parameter values in [0, 1] where the derivative of
// either coordinate is zero. A cubic can have up to four.
func (c CubicBez) Extrema() []float64 {
	result := make([]float64, 0, 4)

	// The derivative is quadratic in Bernstein form.
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	result = append(result, unitRoots(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)...)
	result = append(result, unitRoots(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)

	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRect(c.P0, c.P3)
	for _, t := range c.Extrema() {
		bbox = bbox.expand(c.Eval(t))
	}
	return bbox
}

// unitRoots returns the real roots of a*t^2 + b*t + c = 0 that lie in
// [0, 1]. Degenerate (linear) equations are handled; roots very close
// to the interval boundary are clamped onto it.
func unitRoots(a, b, c float64) []float64 {
	const eps = 1e-12

	var roots []float64
	if math.Abs(a) < eps {
		if math.Abs(b) >= eps {
			roots = []float64{-c / b}
		}
	} else {
		disc := b*b - 4*a*c
		switch {
		case disc < 0:
			return nil
		case disc == 0:
			roots = []float64{-b / (2 * a)}
		default:
			// Numerically stable form avoiding cancellation.
			q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
			roots = []float64{q / a, c / q}
		}
	}

	result := roots[:0]
	for _, t := range roots {
		if t >= -eps && t <= 1+eps {
			result = append(result, math.Min(1, math.Max(0, t)))
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
