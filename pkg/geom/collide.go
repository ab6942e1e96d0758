package geom

import "math"

// QuadraticSolutionsInRange reports whether a·t² + b·t + c = 0 describes a
// segment/circle intersection for t in [0, 1]. It returns 1 when real roots
// exist and they are not both below zero or both above one, else 0.
//
// The degenerate case a == 0 (a zero-length segment) is treated as a point
// test: 1 if the point lies inside or on the circle (c <= 0).
func QuadraticSolutionsInRange(a, b, c float64) int {
	if a == 0 {
		if c <= 0 {
			return 1
		}
		return 0
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0
	}
	root := math.Sqrt(disc)
	t1 := (-b + root) / (2 * a)
	t2 := (-b - root) / (2 * a)

	if (t1 < 0 && t2 < 0) || (t1 > 1 && t2 > 1) {
		return 0
	}
	return 1
}

// CircleLineCollisions counts how many of lines touch the circle with the
// given center and radius. Each segment contributes at most one collision.
//
// With d = p1 - p0 and s = p0 - center the intersection condition becomes
//
//	dot(d, d) t² + 2 dot(d, s) t + (dot(s, s) - r²) = 0
func CircleLineCollisions(center Point, radius float64, lines []Segment) int {
	n := 0
	for _, l := range lines {
		d := l.P1.Sub(l.P0)
		s := l.P0.Sub(center)
		n += QuadraticSolutionsInRange(d.Dot(d), 2*d.Dot(s), s.Dot(s)-radius*radius)
	}
	return n
}

// CircleCircleCollisions always returns 0.
//
// Circle/circle overlap is not counted, so self-loops on nearby nodes may
// overlap each other without being detected. This is a known limitation kept
// on purpose; callers must not rely on circles influencing placement.
func CircleCircleCollisions(center Point, radius float64, circles []Circle) int {
	return 0
}

// Collisions counts colliding entities (not intersection points) between a
// circle and a set of obstacle segments and circles.
func Collisions(center Point, radius float64, lines []Segment, circles []Circle) int {
	return CircleLineCollisions(center, radius, lines) +
		CircleCircleCollisions(center, radius, circles)
}
