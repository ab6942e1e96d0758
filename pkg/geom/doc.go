// Package geom provides the small amount of plane geometry needed by the
// graph editor: points and vectors, rotation, angle normalization, and
// line/circle intersection counting.
//
// # Conventions
//
// A single [Point] type is used both for positions and for displacement
// vectors. All angles are in radians and follow the screen convention used by
// the rest of the editor: the y axis points down, so a positive rotation turns
// clockwise on screen.
//
// # Collision Counting
//
// [CircleLineCollisions] substitutes the parametric form of each segment
// p(t) = p0 + t(p1 - p0) into the circle equation and counts the segments whose
// quadratic has a root in [0, 1] (or whose two roots straddle that interval).
// [CircleCircleCollisions] is intentionally unimplemented and always reports
// zero; see its documentation.
//
// Every function in this package is pure and total on finite input.
package geom
