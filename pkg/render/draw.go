package render

import (
	"math"

	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/graph"
)

// Draw paints g onto c: edges first, so node disks cover edge ends, then
// nodes with their labels.
func Draw(c Canvas, vp Viewport, g *graph.Graph, styles Styles) {
	for _, e := range g.Edges() {
		st := styles.Edge(e.Key())
		switch s := e.Style().(type) {
		case graph.LineStyle:
			DrawArrow(c, vp, s.Start, s.End, st.LineWidth, st.Color)
			drawEdgeLabel(c, vp, s.Start, s.End, e.Label, false)
		case graph.LoopStyle:
			n, _ := g.Node(e.From)
			drawLoop(c, vp, n.Position(), s, e.Label, st)
		}
	}
	for _, n := range g.Nodes() {
		DrawNode(c, vp, n, styles.Node(n.ID))
	}
}

// DrawNode paints a node disk and its centered label.
func DrawNode(c Canvas, vp Viewport, n *graph.Node, st NodeStyle) {
	center := vp.ToPixel(n.Position())
	c.Circle(center, vp.LenToPixel(st.Radius), st.FillColor, Stroke{
		Color: st.BorderColor,
		Width: math.Ceil(vp.LenToPixel(st.LineWidth)),
	})
	if n.Label == "" {
		return
	}
	c.Text(Text{
		At:       center,
		Content:  NormalizeLabel(n.Label),
		Font:     NodeFont,
		Italic:   true,
		Size:     vp.LenToPixel(NodeFontSize),
		Color:    TextColor,
		Anchor:   AnchorMiddle,
		Baseline: BaselineCentral,
	})
}

// DrawArrow draws a line from → to with an arrowhead at to. Points and
// thickness are in world units.
func DrawArrow(c Canvas, vp Viewport, from, to geom.Point, thickness float64, color string) {
	s := Stroke{Color: color, Width: math.Ceil(vp.LenToPixel(thickness))}
	c.Line(vp.ToPixel(from), vp.ToPixel(to), s)
	drawArrowhead(c, vp, from, to, s)
}

// drawArrowhead draws two short strokes meeting at tip, opening back
// toward from.
func drawArrowhead(c Canvas, vp Viewport, from, tip geom.Point, s Stroke) {
	back := from.Sub(tip).Unit()
	left := tip.Add(back.Rotate(ArrowheadRotation).Scale(ArrowheadSize))
	right := tip.Add(back.Rotate(-ArrowheadRotation).Scale(ArrowheadSize))

	c.Line(vp.ToPixel(left), vp.ToPixel(tip), s)
	c.Line(vp.ToPixel(right), vp.ToPixel(tip), s)
}

func drawLoop(c Canvas, vp Viewport, node geom.Point, s graph.LoopStyle, label string, st EdgeStyle) {
	stroke := Stroke{Color: st.Color, Width: math.Ceil(vp.LenToPixel(st.LineWidth))}
	c.Circle(vp.ToPixel(s.Center), vp.LenToPixel(s.Radius), "none", stroke)

	// The arrowhead arrives parallel to the node-to-loop axis rather than
	// normal to the loop circle.
	out := s.Center.Sub(node)
	drawArrowhead(c, vp, s.Arrow.Add(out), s.Arrow, stroke)

	dir := out.Unit()
	tangentPoint := s.Center.Add(dir.Scale(s.Radius + loopLabelOffset))
	tangent := dir.Rotate(math.Pi / 2).Scale(loopLabelLength / 2)
	drawEdgeLabel(c, vp, tangentPoint.Add(tangent), tangentPoint.Sub(tangent), label, true)
}

// drawEdgeLabel centers label on the segment p0-p1 (world), rotated along it
// and lifted off it. Labels that would read upside down are flipped; with
// hug set the flipped label is also shifted by its height so it stays on
// the same side of the line.
func drawEdgeLabel(c Canvas, vp Viewport, p0, p1 geom.Point, label string, hug bool) {
	if label == "" {
		return
	}
	from, to := vp.ToPixel(p0), vp.ToPixel(p1)
	size := vp.LenToPixel(EdgeFontSize)

	theta := to.Sub(from).Angle()
	if theta < -math.Pi/2 || theta > math.Pi/2 {
		theta += math.Pi
		from, to = to, from
		if hug {
			normal := to.Sub(from).Unit().Rotate(math.Pi / 2).Scale(size)
			from, to = from.Add(normal), to.Add(normal)
		}
	}

	dir := to.Sub(from).Unit()
	at := from.Add(to).Scale(0.5).Add(dir.Rotate(-math.Pi / 2).Scale(math.Ceil(vp.LenToPixel(labelOffset))))
	c.Text(Text{
		At:      at,
		Content: NormalizeLabel(label),
		Font:    EdgeFont,
		Size:    size,
		Color:   TextColor,
		Rotate:  geom.NormalizeAngle(theta),
		Anchor:  AnchorMiddle,
	})
}
