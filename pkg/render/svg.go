package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/graph"
)

// SVG is a [Canvas] that accumulates an SVG document.
type SVG struct {
	buf  bytes.Buffer
	done bool
}

// NewSVG starts a w×h pixel document. A non-empty background fills it.
func NewSVG(w, h float64, background string) *SVG {
	s := &SVG{}
	fmt.Fprintf(&s.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if background != "" {
		fmt.Fprintf(&s.buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(background))
	}
	return s
}

// Line implements Canvas.
func (s *SVG) Line(p0, p1 geom.Point, st Stroke) {
	fmt.Fprintf(&s.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.0f" stroke-linecap="round"/>`+"\n",
		p0.X, p0.Y, p1.X, p1.Y, escapeXML(st.Color), st.Width)
}

// Circle implements Canvas.
func (s *SVG) Circle(c geom.Point, r float64, fill string, st Stroke) {
	fmt.Fprintf(&s.buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%.0f"/>`+"\n",
		c.X, c.Y, r, escapeXML(fill), escapeXML(st.Color), st.Width)
}

// Text implements Canvas.
func (s *SVG) Text(t Text) {
	fmt.Fprintf(&s.buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" fill="%s"`,
		t.At.X, t.At.Y, escapeXML(t.Font), t.Size, escapeXML(t.Color))
	if t.Italic {
		s.buf.WriteString(` font-style="italic"`)
	}
	if t.Anchor == AnchorMiddle {
		s.buf.WriteString(` text-anchor="middle"`)
	}
	if t.Baseline == BaselineCentral {
		s.buf.WriteString(` dominant-baseline="central"`)
	}
	if t.Rotate != 0 {
		fmt.Fprintf(&s.buf, ` transform="rotate(%.2f %.2f %.2f)"`, t.Rotate*180/math.Pi, t.At.X, t.At.Y)
	}
	fmt.Fprintf(&s.buf, ">%s</text>\n", escapeXML(t.Content))
}

// Bytes closes the document and returns it. Further drawing is ignored by
// the returned slice.
func (s *SVG) Bytes() []byte {
	if !s.done {
		s.buf.WriteString("</svg>\n")
		s.done = true
	}
	return s.buf.Bytes()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	background    string
	styles        Styles
	extra         func(Canvas, Viewport)
}

// WithSize sets the document size in pixels. The world is fitted and
// centered inside it.
func WithSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = w, h }
}

// WithBackground fills the document with color before drawing.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithStyles applies per-entity style overrides.
func WithStyles(s Styles) SVGOption { return func(r *svgRenderer) { r.styles = s } }

// WithOverlay runs fn after the graph is drawn, for decorations such as a
// provisional edge.
func WithOverlay(fn func(Canvas, Viewport)) SVGOption {
	return func(r *svgRenderer) { r.extra = fn }
}

// DefaultWidth and DefaultHeight size documents rendered without
// [WithSize]: one world unit is 1000 pixels.
const (
	DefaultWidth  = 1000
	DefaultHeight = 600
)

// RenderSVG draws g into a new SVG document.
func RenderSVG(g *graph.Graph, opts ...SVGOption) []byte {
	r := svgRenderer{width: DefaultWidth, height: DefaultHeight, background: "white"}
	for _, opt := range opts {
		opt(&r)
	}

	vp := NewViewport(geom.Rect{W: r.width, H: r.height})
	svg := NewSVG(r.width, r.height, r.background)
	Draw(svg, vp, g, r.styles)
	if r.extra != nil {
		r.extra(svg, vp)
	}
	return svg.Bytes()
}
