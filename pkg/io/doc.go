// Package io provides JSON import and export for editable graphs.
//
// # JSON Format
//
// A document has three top-level keys:
//
//	{
//	  "nodes": [
//	    {"index": 0, "label": "q0", "pos": [0.2, 0.2], "aux": null},
//	    {"index": 1, "label": "q1", "pos": [0.4, 0.2], "aux": null}
//	  ],
//	  "edges": [
//	    {"from": 0, "to": 1, "label": "a", "aux": null}
//	  ],
//	  "aux": null
//	}
//
// Node indices are the graph's node ids and are restored exactly, including
// gaps. Positions are world coordinates. The "aux" values are produced and
// consumed by the graph's [graph.AuxProvider]; without a provider they are
// written as null and ignored on read.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	g, err := io.ImportJSON("dfa.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Ids between 0 and the largest index that no node uses become free, so the
// next [graph.Graph.AddNode] fills the lowest gap. An edge naming an index
// that no node carries fails the whole import with an error wrapping
// [errors.ReferenceError], and a repeated edge fails it with INVALID_GRAPH;
// no partial graph is returned.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer. Nodes are written in id order and edges in (from, to) order, so
// exporting the same graph twice yields identical bytes.
//
// [errors.ReferenceError]: github.com/matzehuels/graphedit/pkg/errors.ReferenceError
package io
