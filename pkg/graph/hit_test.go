package graph

import (
	"testing"

	"github.com/matzehuels/graphedit/pkg/geom"
)

func TestNodeAt(t *testing.T) {
	g := New()
	a := g.AddNode(geom.Pt(0.2, 0.2))

	tests := []struct {
		name string
		p    geom.Point
		want bool
	}{
		{"Center", geom.Pt(0.2, 0.2), true},
		{"Inside", geom.Pt(0.22, 0.21), true},
		{"NearBorder", geom.Pt(0.2, 0.2+0.0349), true},
		{"Outside", geom.Pt(0.24, 0.2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := g.NodeAt(tt.p)
			if ok != tt.want {
				t.Fatalf("NodeAt(%v) ok = %v, want %v", tt.p, ok, tt.want)
			}
			if ok && n.ID != a {
				t.Errorf("NodeAt(%v) = %d, want %d", tt.p, n.ID, a)
			}
		})
	}
}

func TestEdgeAtLine(t *testing.T) {
	g := New()
	a := g.AddNode(geom.Pt(0.2, 0.2))
	b := g.AddNode(geom.Pt(0.4, 0.2))
	g.AddEdge(a, b, "")

	tests := []struct {
		name string
		p    geom.Point
		want bool
	}{
		{"OnLine", geom.Pt(0.3, 0.2), true},
		{"WithinBand", geom.Pt(0.3, 0.207), true},
		{"OutsideBand", geom.Pt(0.3, 0.21), false},
		{"PastEnd", geom.Pt(0.37, 0.2), false},
		{"BeforeStart", geom.Pt(0.23, 0.2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := g.EdgeAt(tt.p)
			if ok != tt.want {
				t.Errorf("EdgeAt(%v) ok = %v, want %v", tt.p, ok, tt.want)
			}
		})
	}
}

func TestEdgeAtLoop(t *testing.T) {
	g := New()
	n := g.AddNode(geom.Pt(0.5, 0.3))
	g.AddEdge(n, n, "")
	s := loopOf(t, g, n)

	if _, ok := g.EdgeAt(s.Center.Add(geom.Pt(s.Radius+0.01, 0))); !ok {
		t.Error("point just outside the loop circle missed")
	}
	if _, ok := g.EdgeAt(s.Center.Add(geom.Pt(0, -s.Radius))); !ok {
		t.Error("point on the loop circle missed")
	}
	if _, ok := g.EdgeAt(s.Center); ok {
		t.Error("loop center hit")
	}
}

func TestEntityAtPrefersNodes(t *testing.T) {
	g := New()
	a := g.AddNode(geom.Pt(0.2, 0.2))
	b := g.AddNode(geom.Pt(0.4, 0.2))
	g.AddEdge(a, b, "")

	if got := g.EntityAt(geom.Pt(0.2, 0.2)); got != NodeEntity(a) {
		t.Errorf("EntityAt(node a) = %v, want %v", got, NodeEntity(a))
	}
	if got := g.EntityAt(geom.Pt(0.3, 0.2)); got != EdgeEntity(EdgeKey{a, b}) {
		t.Errorf("EntityAt(midpoint) = %v, want edge", got)
	}
	if got := g.EntityAt(geom.Pt(0.8, 0.5)); got != NoEntity {
		t.Errorf("EntityAt(empty) = %v, want none", got)
	}
}
