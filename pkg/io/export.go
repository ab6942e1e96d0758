package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/graphedit/pkg/graph"
)

type document struct {
	Nodes []node          `json:"nodes"`
	Edges []edge          `json:"edges"`
	Aux   json.RawMessage `json:"aux"`
}

type node struct {
	Index int             `json:"index"`
	Label string          `json:"label"`
	Pos   [2]float64      `json:"pos"`
	Aux   json.RawMessage `json:"aux"`
}

type edge struct {
	From  int             `json:"from"`
	To    int             `json:"to"`
	Label string          `json:"label"`
	Aux   json.RawMessage `json:"aux"`
}

// WriteJSON encodes g as JSON and writes it to w.
// This format can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	aux := g.Aux()
	out := document{
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes() {
		p := n.Position()
		nd := node{Index: int(n.ID), Label: n.Label, Pos: [2]float64{p.X, p.Y}}
		if aux != nil {
			raw, err := aux.WriteNodeAux(n.Aux)
			if err != nil {
				return fmt.Errorf("node %d aux: %w", n.ID, err)
			}
			nd.Aux = raw
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for _, e := range g.Edges() {
		ed := edge{From: int(e.From), To: int(e.To), Label: e.Label}
		if aux != nil {
			raw, err := aux.WriteEdgeAux(e.Aux)
			if err != nil {
				return fmt.Errorf("edge %d->%d aux: %w", e.From, e.To, err)
			}
			ed.Aux = raw
		}
		out.Edges = append(out.Edges, ed)
	}
	if aux != nil {
		raw, err := aux.WriteAux()
		if err != nil {
			return fmt.Errorf("graph aux: %w", err)
		}
		out.Aux = raw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal returns the JSON encoding of g as written by [WriteJSON].
func Marshal(g *graph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
