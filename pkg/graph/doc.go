// Package graph provides the editable directed graph at the heart of
// graphedit: positioned, labeled nodes with recyclable integer identities and
// labeled directed edges, together with the layout engine that decides where
// each edge is drawn and the hit tests used for pointer interaction.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [Graph.AddNode] and edges with
// [Graph.AddEdge]:
//
//	g := graph.New()
//	a := g.AddNode(geom.Pt(0.2, 0.2))
//	b := g.AddNode(geom.Pt(0.4, 0.2))
//	g.AddEdge(a, b, "x")
//
// Node positions live in the logical rectangle [0,1] × [0,1/AspectRatio]
// returned by [World]. Positions are clamped so that the full node disk stays
// inside it.
//
// # Identities
//
// Node ids are small non-negative integers. [Graph.AddNode] always hands out
// the smallest id not currently in use, so ids freed by [Graph.RemoveNode] are
// reused. An edge is identified by its ordered endpoint pair, [EdgeKey]; at
// most one edge exists per ordered pair, while the reverse pair is a distinct
// edge.
//
// # Layout
//
// Every structural or positional mutation recomputes the render geometry of
// all edges (see [Edge.Style]). Straight edges are trimmed to the node
// borders and bent apart when a reciprocal edge exists. Self-loops are placed
// at the angle that crosses the fewest obstacle lines, choosing the middle of
// the widest collision-free arc. Circle/circle overlap is not considered, so
// nearby self-loops may still overlap; this is a known limitation.
//
// # Auxiliary Data
//
// Client-specific data attaches to nodes, edges and the graph through an
// [AuxProvider]. The graph never interprets it.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. A host that shares a graph
// between goroutines must guard the graph, its layout and any editor driving
// it with a single lock.
package graph
