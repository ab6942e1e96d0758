package graph

import "encoding/json"

// AuxProvider produces and (de)serializes client data attached to nodes,
// edges and the graph as a whole. When a graph has a provider, every node and
// edge created through [Graph.AddNode] and [Graph.AddEdge] receives a payload
// from NewNode or NewEdge. Payloads are opaque to the graph.
//
// Raw messages passed to the Read methods are the JSON value stored under the
// "aux" key, or nil when the key is absent.
type AuxProvider interface {
	NewNode(n *Node) any
	NewEdge(e *Edge) any

	ReadNodeAux(n *Node, raw json.RawMessage) (any, error)
	ReadEdgeAux(e *Edge, raw json.RawMessage) (any, error)
	WriteNodeAux(aux any) (json.RawMessage, error)
	WriteEdgeAux(aux any) (json.RawMessage, error)

	// ReadAux and WriteAux handle the graph-level payload.
	ReadAux(raw json.RawMessage) error
	WriteAux() (json.RawMessage, error)
}
