package render

import "github.com/matzehuels/graphedit/pkg/geom"

// Canvas is a drawing surface addressed in pixels.
type Canvas interface {
	Line(p0, p1 geom.Point, s Stroke)
	// Circle draws a circle of radius r around c. fill may be "none".
	Circle(c geom.Point, r float64, fill string, s Stroke)
	Text(t Text)
}

// Stroke describes a line's color and width in pixels.
type Stroke struct {
	Color string
	Width float64
}

// Anchor is the horizontal alignment of text relative to its position.
type Anchor uint8

const (
	AnchorStart Anchor = iota
	AnchorMiddle
)

// Baseline is the vertical alignment of text relative to its position.
type Baseline uint8

const (
	BaselineAlphabetic Baseline = iota
	BaselineCentral
)

// Text is a run of text placed at a pixel position and rotated about it.
type Text struct {
	At       geom.Point
	Content  string
	Font     string
	Italic   bool
	Size     float64 // pixels
	Color    string
	Rotate   float64 // radians, clockwise on screen
	Anchor   Anchor
	Baseline Baseline
}
