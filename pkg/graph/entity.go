package graph

import "fmt"

// EntityKind tags the variant held by an [Entity].
type EntityKind uint8

const (
	EntityNone EntityKind = iota // references nothing
	EntityNode                   // references a node by id
	EntityEdge                   // references an edge by endpoints
)

// Entity is a reference to nothing, a node or an edge. Entities are plain
// values: they stay comparable after the referenced element is removed, and
// [Graph.Contains] tells whether they still resolve.
type Entity struct {
	Kind EntityKind
	Node NodeID  // valid when Kind == EntityNode
	Edge EdgeKey // valid when Kind == EntityEdge
}

// NoEntity is the empty reference.
var NoEntity = Entity{}

// NodeEntity references the node id.
func NodeEntity(id NodeID) Entity { return Entity{Kind: EntityNode, Node: id} }

// EdgeEntity references the edge with key k.
func EdgeEntity(k EdgeKey) Entity { return Entity{Kind: EntityEdge, Edge: k} }

// IsNone reports whether e references nothing.
func (e Entity) IsNone() bool { return e.Kind == EntityNone }

// IsNode reports whether e references a node.
func (e Entity) IsNode() bool { return e.Kind == EntityNode }

// IsEdge reports whether e references an edge.
func (e Entity) IsEdge() bool { return e.Kind == EntityEdge }

// Touches reports whether e is the node id or an edge incident to it.
func (e Entity) Touches(id NodeID) bool {
	switch e.Kind {
	case EntityNode:
		return e.Node == id
	case EntityEdge:
		return e.Edge.From == id || e.Edge.To == id
	}
	return false
}

func (e Entity) String() string {
	switch e.Kind {
	case EntityNode:
		return fmt.Sprintf("node %d", e.Node)
	case EntityEdge:
		return fmt.Sprintf("edge %d->%d", e.Edge.From, e.Edge.To)
	}
	return "none"
}
