package render

import (
	"math"

	"github.com/matzehuels/graphedit/pkg/graph"
)

// Drawing constants in world units unless noted.
const (
	NodeBorderWidth = 3.0 / 1000
	EdgeWidth       = 3.0 / 1000

	ArrowheadSize     = 0.02
	ArrowheadRotation = math.Pi / 8 // radians

	EdgeFontSize = 24.0 / 1000
	NodeFontSize = 28.0 / 1000

	// labelOffset lifts edge labels off the edge line.
	labelOffset = 8.0 / 1000

	// Loop labels are drawn on a tangent line of this length, placed
	// loopLabelOffset beyond the loop circle.
	loopLabelLength = 150.0 / 1000
	loopLabelOffset = 30.0 / 1000
)

// Colors and fonts.
const (
	NodeColor       = "white"
	NodeBorderColor = "black"
	EdgeColor       = "black"
	TextColor       = "black"

	EdgeFont = "monospace"
	NodeFont = "serif"
)

// NodeStyle controls how a node disk is drawn.
type NodeStyle struct {
	Radius      float64
	LineWidth   float64
	FillColor   string
	BorderColor string
}

// DefaultNodeStyle returns the style used for nodes without an override.
func DefaultNodeStyle() NodeStyle {
	return NodeStyle{
		Radius:      graph.NodeRadius,
		LineWidth:   NodeBorderWidth,
		FillColor:   NodeColor,
		BorderColor: NodeBorderColor,
	}
}

// EdgeStyle controls how an edge is stroked.
type EdgeStyle struct {
	LineWidth float64
	Color     string
}

// DefaultEdgeStyle returns the style used for edges without an override.
func DefaultEdgeStyle() EdgeStyle {
	return EdgeStyle{LineWidth: EdgeWidth, Color: EdgeColor}
}

// Styles holds per-entity overrides. Missing entries use the defaults.
type Styles struct {
	Nodes map[graph.NodeID]NodeStyle
	Edges map[graph.EdgeKey]EdgeStyle
}

// Node returns the style for id.
func (s Styles) Node(id graph.NodeID) NodeStyle {
	if st, ok := s.Nodes[id]; ok {
		return st
	}
	return DefaultNodeStyle()
}

// Edge returns the style for k.
func (s Styles) Edge(k graph.EdgeKey) EdgeStyle {
	if st, ok := s.Edges[k]; ok {
		return st
	}
	return DefaultEdgeStyle()
}
