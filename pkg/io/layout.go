package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/graphedit/pkg/graph"
)

// Edge shapes in a [Layout].
const (
	ShapeLine = "line"
	ShapeLoop = "loop"
)

// Layout is the computed geometry of a graph, in world coordinates. It is an
// output only: documents never store it, since it is recomputed on load.
type Layout struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Nodes  []LayoutNode `json:"nodes"`
	Edges  []LayoutEdge `json:"edges"`
}

// LayoutNode is a node disk.
type LayoutNode struct {
	ID     int        `json:"id"`
	Label  string     `json:"label"`
	Center [2]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

// LayoutEdge is the drawn shape of an edge. Lines carry Start and End;
// loops carry Center, Radius and Arrow.
type LayoutEdge struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Label string `json:"label"`
	Shape string `json:"shape"`

	Start  *[2]float64 `json:"start,omitempty"`
	End    *[2]float64 `json:"end,omitempty"`
	Center *[2]float64 `json:"center,omitempty"`
	Radius float64     `json:"radius,omitempty"`
	Arrow  *[2]float64 `json:"arrow,omitempty"`
}

// BuildLayout captures the current node positions and edge styles of g.
func BuildLayout(g *graph.Graph) Layout {
	world := graph.World()
	l := Layout{
		Width:  world.W,
		Height: world.H,
		Nodes:  make([]LayoutNode, 0, g.NodeCount()),
		Edges:  make([]LayoutEdge, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		p := n.Position()
		l.Nodes = append(l.Nodes, LayoutNode{
			ID:     int(n.ID),
			Label:  n.Label,
			Center: [2]float64{p.X, p.Y},
			Radius: graph.NodeRadius,
		})
	}

	for _, e := range g.Edges() {
		le := LayoutEdge{From: int(e.From), To: int(e.To), Label: e.Label}
		switch s := e.Style().(type) {
		case graph.LineStyle:
			le.Shape = ShapeLine
			le.Start = &[2]float64{s.Start.X, s.Start.Y}
			le.End = &[2]float64{s.End.X, s.End.Y}
		case graph.LoopStyle:
			le.Shape = ShapeLoop
			le.Center = &[2]float64{s.Center.X, s.Center.Y}
			le.Radius = s.Radius
			le.Arrow = &[2]float64{s.Arrow.X, s.Arrow.Y}
		}
		l.Edges = append(l.Edges, le)
	}
	return l
}

// WriteLayoutJSON writes the layout of g to w as indented JSON.
func WriteLayoutJSON(g *graph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildLayout(g)); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}
