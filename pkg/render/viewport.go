package render

import (
	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/graph"
)

// Viewport maps world coordinates to pixels. The zero value maps everything
// to the origin; call [Viewport.SetBounds] or use [NewViewport].
type Viewport struct {
	raw    geom.Rect
	base   geom.Point
	width  float64
	height float64
}

// NewViewport returns a viewport fitted to bounds.
func NewViewport(bounds geom.Rect) Viewport {
	var v Viewport
	v.SetBounds(bounds)
	return v
}

// SetBounds fits the largest rectangle with the world's aspect ratio into
// bounds and centers it.
func (v *Viewport) SetBounds(bounds geom.Rect) {
	v.raw = bounds
	if bounds.W <= 0 || bounds.H <= 0 {
		v.base, v.width, v.height = bounds.Min(), 0, 0
		return
	}

	if bounds.W/bounds.H <= graph.AspectRatio {
		v.width = bounds.W
		v.height = v.width / graph.AspectRatio
	} else {
		v.height = bounds.H
		v.width = v.height * graph.AspectRatio
	}
	v.base = geom.Pt(bounds.X+(bounds.W-v.width)/2, bounds.Y+(bounds.H-v.height)/2)
}

// Bounds returns the rectangle last passed to SetBounds.
func (v Viewport) Bounds() geom.Rect { return v.raw }

// ComputedBounds returns the pixel rectangle the world is drawn into.
func (v Viewport) ComputedBounds() geom.Rect {
	return geom.Rect{X: v.base.X, Y: v.base.Y, W: v.width, H: v.height}
}

// Scale returns the number of pixels per world unit.
func (v Viewport) Scale() float64 { return v.width }

// ToPixel maps a world point to pixels.
func (v Viewport) ToPixel(p geom.Point) geom.Point {
	return p.Scale(v.width).Add(v.base)
}

// ToWorld maps a pixel point to world coordinates. An empty viewport maps
// every point to the world origin.
func (v Viewport) ToWorld(p geom.Point) geom.Point {
	if v.width == 0 {
		return geom.Point{}
	}
	return p.Sub(v.base).Scale(1 / v.width)
}

// LenToPixel converts a world distance to pixels.
func (v Viewport) LenToPixel(d float64) float64 { return d * v.width }

// LenToWorld converts a pixel distance to world units.
func (v Viewport) LenToWorld(d float64) float64 {
	if v.width == 0 {
		return 0
	}
	return d / v.width
}

// RectToPixel maps a world rectangle to pixels.
func (v Viewport) RectToPixel(r geom.Rect) geom.Rect {
	return geom.RectFromCorners(v.ToPixel(r.Min()), v.ToPixel(r.Max()))
}

// RectToWorld maps a pixel rectangle to world coordinates.
func (v Viewport) RectToWorld(r geom.Rect) geom.Rect {
	return geom.RectFromCorners(v.ToWorld(r.Min()), v.ToWorld(r.Max()))
}
