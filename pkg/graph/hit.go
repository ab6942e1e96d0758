package graph

import "github.com/matzehuels/graphedit/pkg/geom"

// NodeAt returns the first node, in id order, whose disk contains p.
func (g *Graph) NodeAt(p geom.Point) (*Node, bool) {
	for _, n := range g.Nodes() {
		if geom.IsCloseTo(p, n.pos, NodeRadius) {
			return n, true
		}
	}
	return nil, false
}

// EdgeAt returns the first edge, in (from, to) order, whose current style
// contains p. Nodes are not considered; callers that want nodes to win test
// [Graph.NodeAt] first.
func (g *Graph) EdgeAt(p geom.Point) (*Edge, bool) {
	for _, e := range g.Edges() {
		if e.style != nil && e.style.Contains(p) {
			return e, true
		}
	}
	return nil, false
}

// EntityAt returns the node at p, else the edge at p, else [NoEntity].
func (g *Graph) EntityAt(p geom.Point) Entity {
	if n, ok := g.NodeAt(p); ok {
		return NodeEntity(n.ID)
	}
	if e, ok := g.EdgeAt(p); ok {
		return EdgeEntity(e.Key())
	}
	return NoEntity
}
