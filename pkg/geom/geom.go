package geom

import "math"

// Point is a position or a displacement in the plane.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p * k.
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Len returns the Euclidean magnitude of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// LenSq returns the squared magnitude of p.
func (p Point) LenSq() float64 { return p.Dot(p) }

// Unit returns p scaled to length one. The zero vector is returned unchanged.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return p
	}
	return Point{p.X / l, p.Y / l}
}

// Rotate returns p rotated by theta radians about the origin.
func (p Point) Rotate(theta float64) Point {
	s, c := math.Sincos(theta)
	return Point{p.X*c - p.Y*s, p.X*s + p.Y*c}
}

// Angle returns the direction of p in (-π, π].
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }

// UnitToward returns the unit vector pointing in direction theta.
func UnitToward(theta float64) Point {
	s, c := math.Sincos(theta)
	return Point{c, s}
}

// NormalizeAngle maps theta into (-π, π].
func NormalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta <= -math.Pi {
		theta += 2 * math.Pi
	} else if theta > math.Pi {
		theta -= 2 * math.Pi
	}
	return theta
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// IsCloseTo reports whether p and q are within distance d of each other.
// The comparison is done on squared lengths.
func IsCloseTo(p, q Point, d float64) bool {
	return p.Sub(q).LenSq() <= d*d
}

// Segment is the closed line segment from P0 to P1.
type Segment struct {
	P0, P1 Point
}

// Len returns the length of the segment.
func (s Segment) Len() float64 { return s.P1.Sub(s.P0).Len() }

// Circle is a circle given by center and radius.
type Circle struct {
	Center Point
	Radius float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Min returns the top-left corner of r.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Max returns the bottom-right corner of r.
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Center returns the center of r.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// RectFromCorners builds the rectangle spanning min and max.
func RectFromCorners(min, max Point) Rect {
	return Rect{X: min.X, Y: min.Y, W: max.X - min.X, H: max.Y - min.Y}
}

// Edges returns the four boundary segments of r: top, bottom, left, right.
func (r Rect) Edges() []Segment {
	lft, rgt := r.X, r.X+r.W
	top, bot := r.Y, r.Y+r.H
	return []Segment{
		{Point{lft, top}, Point{rgt, top}},
		{Point{lft, bot}, Point{rgt, bot}},
		{Point{lft, top}, Point{lft, bot}},
		{Point{rgt, top}, Point{rgt, bot}},
	}
}

// Clamp returns v limited to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
