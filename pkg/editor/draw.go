package editor

import (
	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/render"
)

// Highlight colors and widths (world units).
const (
	ActiveNodeColor  = "#ffd320"
	HoverBorderColor = "blue"
	HoverBorderWidth = 16.0 / 1000

	ActiveEdgeColor = "#ff950e"
	ActiveEdgeWidth = graph.EdgeTolerance
	HoverEdgeColor  = "blue"
	HoverEdgeWidth  = graph.EdgeTolerance

	ProvisionalEdgeColor = "red"
	ProvisionalEdgeWidth = 3.0 / 1000
)

// Styles returns the per-entity overrides that highlight the active and
// hover entities. A node can be both: it gets the active fill and the hover
// border. An edge that is both is drawn as active.
func (e *Editor) Styles() render.Styles {
	s := render.Styles{
		Nodes: map[graph.NodeID]render.NodeStyle{},
		Edges: map[graph.EdgeKey]render.EdgeStyle{},
	}

	if e.active.IsNode() {
		st := render.DefaultNodeStyle()
		st.FillColor = ActiveNodeColor
		s.Nodes[e.active.Node] = st
	}
	if e.hover.IsNode() {
		st := s.Node(e.hover.Node)
		st.BorderColor = HoverBorderColor
		st.LineWidth = HoverBorderWidth
		st.Radius -= HoverBorderWidth / 2
		s.Nodes[e.hover.Node] = st
	}

	if e.hover.IsEdge() {
		s.Edges[e.hover.Edge] = render.EdgeStyle{Color: HoverEdgeColor, LineWidth: HoverEdgeWidth}
	}
	if e.active.IsEdge() {
		s.Edges[e.active.Edge] = render.EdgeStyle{Color: ActiveEdgeColor, LineWidth: ActiveEdgeWidth}
	}
	return s
}

// Draw paints the graph with highlights onto c, followed by the
// provisional edge of an edge drag.
func (e *Editor) Draw(c render.Canvas) {
	render.Draw(c, e.vp, e.g, e.Styles())
	if from, to, ok := e.DraggedEdge(); ok {
		render.DrawArrow(c, e.vp, from, to, ProvisionalEdgeWidth, ProvisionalEdgeColor)
	}
}
