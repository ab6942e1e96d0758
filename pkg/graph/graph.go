package graph

import (
	"errors"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphedit/pkg/geom"
)

var (
	// ErrDuplicateNode is returned by [Graph.RestoreNode] when a node with the
	// same id already exists.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrDuplicateEdge is returned by [Graph.RestoreEdge] when the edge
	// between the same endpoints is already present.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrUnknownNode is returned by [Graph.RestoreEdge] when an endpoint id
	// does not name a live node.
	ErrUnknownNode = errors.New("unknown node id")

	// ErrInvalidNodeID is returned by [Graph.RestoreNode] for negative ids.
	ErrInvalidNodeID = errors.New("node id must not be negative")
)

// NodeID identifies a node. Ids are unique among live nodes and are reused
// after deletion.
type NodeID int

// EdgeKey identifies a directed edge by its endpoints.
type EdgeKey struct {
	From, To NodeID
}

// Reverse returns the key of the edge running the other way.
func (k EdgeKey) Reverse() EdgeKey { return EdgeKey{From: k.To, To: k.From} }

// IsLoop reports whether the key describes a self-loop.
func (k EdgeKey) IsLoop() bool { return k.From == k.To }

// Node is a positioned, labeled vertex. Nodes are owned by their Graph;
// change the position through [Graph.MoveNode] so the clamp and layout run.
type Node struct {
	ID    NodeID
	Label string
	Aux   any

	pos geom.Point
}

// Position returns the node center in world coordinates.
func (n *Node) Position() geom.Point { return n.pos }

// Edge is a directed, labeled connection between two live nodes.
type Edge struct {
	From, To NodeID
	Label    string
	Aux      any

	style Style
}

// Key returns the edge's identity.
func (e *Edge) Key() EdgeKey { return EdgeKey{From: e.From, To: e.To} }

// IsLoop reports whether the edge is a self-loop.
func (e *Edge) IsLoop() bool { return e.From == e.To }

// Style returns the render geometry computed by the last layout pass.
func (e *Edge) Style() Style { return e.style }

// Option configures a Graph.
type Option func(*Graph)

// WithAux attaches an auxiliary data provider.
func WithAux(p AuxProvider) Option { return func(g *Graph) { g.aux = p } }

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// Graph owns a set of nodes and the adjacency map from → to → edge.
// Every edge in the adjacency map has both endpoints in the node set.
//
// The zero value is not usable; create graphs with [New].
type Graph struct {
	nodes  map[NodeID]*Node
	edges  map[NodeID]map[NodeID]*Edge
	aux    AuxProvider
	logger *log.Logger
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		nodes:  make(map[NodeID]*Node),
		edges:  make(map[NodeID]map[NodeID]*Edge),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Aux returns the auxiliary data provider, or nil.
func (g *Graph) Aux() AuxProvider { return g.aux }

// AddNode creates a node at pos (clamped into the world) with an empty label
// and returns its id. The id is the smallest one not in use.
func (g *Graph) AddNode(pos geom.Point) NodeID {
	n := &Node{ID: g.nextID(), pos: ClampPosition(pos)}
	g.nodes[n.ID] = n
	if g.aux != nil {
		n.Aux = g.aux.NewNode(n)
	}
	g.logger.Debug("add node", "id", n.ID, "x", n.pos.X, "y", n.pos.Y)
	g.relayout()
	return n.ID
}

// nextID returns the smallest id with no node. Only ids below len(g.nodes)
// can be free, so the scan never passes it.
func (g *Graph) nextID() NodeID {
	var id NodeID
	for g.nodes[id] != nil {
		id++
	}
	return id
}

// RestoreNode inserts a node with a caller-chosen id, as needed when loading a
// saved document. No aux payload is produced; the caller supplies one.
// Ids left unused below the largest restored id are handed out by
// [Graph.AddNode] afterwards.
func (g *Graph) RestoreNode(id NodeID, label string, pos geom.Point) (*Node, error) {
	if id < 0 {
		return nil, ErrInvalidNodeID
	}
	if _, ok := g.nodes[id]; ok {
		return nil, ErrDuplicateNode
	}
	n := &Node{ID: id, Label: label, pos: ClampPosition(pos)}
	g.nodes[id] = n
	g.relayout()
	return n, nil
}

// RemoveNode deletes the node and every edge that starts or ends at it, and
// releases its id. Unknown ids are ignored.
func (g *Graph) RemoveNode(id NodeID) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	delete(g.edges, id)
	for from, out := range g.edges {
		delete(out, id)
		if len(out) == 0 {
			delete(g.edges, from)
		}
	}

	g.logger.Debug("remove node", "id", id)
	g.relayout()
}

// MoveNode sets the node position, clamped into the world. It reports whether
// the node exists.
func (g *Graph) MoveNode(id NodeID, pos geom.Point) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	n.pos = ClampPosition(pos)
	g.relayout()
	return true
}

// SetNodeLabel replaces the node label. It reports whether the node exists.
func (g *Graph) SetNodeLabel(id NodeID, label string) bool {
	n, ok := g.nodes[id]
	if ok {
		n.Label = label
	}
	return ok
}

// AddEdge creates the edge from → to and returns it. If that edge already
// exists it is returned unchanged, so no duplicates are ever created. It
// returns nil when either endpoint is not a live node.
func (g *Graph) AddEdge(from, to NodeID, label string) *Edge {
	if e, ok := g.EdgeBetween(from, to); ok {
		return e
	}
	if !g.HasNode(from) || !g.HasNode(to) {
		return nil
	}
	e := g.insertEdge(from, to, label)
	if g.aux != nil {
		e.Aux = g.aux.NewEdge(e)
	}
	g.logger.Debug("add edge", "from", from, "to", to)
	g.relayout()
	return e
}

// RestoreEdge inserts an edge while loading a saved document. Unlike
// [Graph.AddEdge] it fails with [ErrUnknownNode] on a missing endpoint and
// with [ErrDuplicateEdge] when the edge already exists, and it produces no aux
// payload.
func (g *Graph) RestoreEdge(from, to NodeID, label string) (*Edge, error) {
	if !g.HasNode(from) || !g.HasNode(to) {
		return nil, ErrUnknownNode
	}
	if g.HasEdge(from, to) {
		return nil, ErrDuplicateEdge
	}
	e := g.insertEdge(from, to, label)
	g.relayout()
	return e, nil
}

func (g *Graph) insertEdge(from, to NodeID, label string) *Edge {
	e := &Edge{From: from, To: to, Label: label}
	out := g.edges[from]
	if out == nil {
		out = make(map[NodeID]*Edge)
		g.edges[from] = out
	}
	out[to] = e
	return e
}

// RemoveEdge deletes the edge from → to if present.
func (g *Graph) RemoveEdge(from, to NodeID) {
	out, ok := g.edges[from]
	if !ok {
		return
	}
	if _, ok := out[to]; !ok {
		return
	}
	delete(out, to)
	if len(out) == 0 {
		delete(g.edges, from)
	}
	g.logger.Debug("remove edge", "from", from, "to", to)
	g.relayout()
}

// SetEdgeLabel replaces the edge label. It reports whether the edge exists.
func (g *Graph) SetEdgeLabel(from, to NodeID, label string) bool {
	e, ok := g.EdgeBetween(from, to)
	if ok {
		e.Label = label
	}
	return ok
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether id names a live node.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// EdgeBetween returns the edge from → to.
func (g *Graph) EdgeBetween(from, to NodeID) (*Edge, bool) {
	e, ok := g.edges[from][to]
	return e, ok
}

// HasEdge reports whether the edge from → to exists.
func (g *Graph) HasEdge(from, to NodeID) bool {
	_, ok := g.edges[from][to]
	return ok
}

// NodeLabeled returns the first node, in id order, whose label is label.
func (g *Graph) NodeLabeled(label string) (*Node, bool) {
	for _, n := range g.Nodes() {
		if n.Label == label {
			return n, true
		}
	}
	return nil, false
}

// Contains reports whether the entity refers to a live node or edge.
// The empty entity is never contained.
func (g *Graph) Contains(e Entity) bool {
	switch e.Kind {
	case EntityNode:
		return g.HasNode(e.Node)
	case EntityEdge:
		return g.HasEdge(e.Edge.From, e.Edge.To)
	}
	return false
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, out := range g.edges {
		n += len(out)
	}
	return n
}

// Nodes returns all nodes ordered by id. Callers must not hold on to the
// slice across mutations.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *Node) int { return int(a.ID - b.ID) })
	return nodes
}

// Edges returns all edges ordered by (from, to).
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, g.EdgeCount())
	for _, out := range g.edges {
		for _, e := range out {
			edges = append(edges, e)
		}
	}
	slices.SortFunc(edges, func(a, b *Edge) int {
		if a.From != b.From {
			return int(a.From - b.From)
		}
		return int(a.To - b.To)
	})
	return edges
}

// ForEachNode calls fn for every node. The graph must not be mutated from fn.
func (g *Graph) ForEachNode(fn func(*Node)) {
	for _, n := range g.Nodes() {
		fn(n)
	}
}

// ForEachEdge calls fn for every edge. The graph must not be mutated from fn.
func (g *Graph) ForEachEdge(fn func(*Edge)) {
	for _, e := range g.Edges() {
		fn(e)
	}
}

// ClampPosition limits p so that a node disk of [NodeRadius] centered there
// stays inside [World]. Clamping is idempotent.
func ClampPosition(p geom.Point) geom.Point {
	w := World()
	return geom.Point{
		X: geom.Clamp(p.X, w.X+NodeRadius, w.X+w.W-NodeRadius),
		Y: geom.Clamp(p.Y, w.Y+NodeRadius, w.Y+w.H-NodeRadius),
	}
}
