package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	apperrors "github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/graph"
)

// ReadJSON decodes a JSON document from r into a new graph built with opts.
// If opts attach an [graph.AuxProvider], it reads the graph payload first,
// then each node and edge payload as the element is restored.
//
// ReadJSON returns an error if:
//   - The JSON is malformed (code INVALID_FORMAT)
//   - Two nodes share an index or an index is negative (INVALID_GRAPH)
//   - An edge references an unknown node index (INVALID_GRAPH, wrapping
//     [apperrors.ReferenceError])
//   - The aux provider rejects a payload
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader, opts ...graph.Option) (*graph.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode graph")
	}

	g := graph.New(opts...)
	aux := g.Aux()
	if aux != nil {
		if err := aux.ReadAux(data.Aux); err != nil {
			return nil, fmt.Errorf("graph aux: %w", err)
		}
	}

	for _, n := range data.Nodes {
		nd, err := g.RestoreNode(graph.NodeID(n.Index), n.Label, geom.Pt(n.Pos[0], n.Pos[1]))
		if err != nil {
			code := apperrors.ErrCodeInvalidGraph
			if errors.Is(err, graph.ErrDuplicateNode) {
				code = apperrors.ErrCodeDuplicateNode
			}
			return nil, apperrors.Wrap(code, err, "node %d", n.Index)
		}
		if aux != nil {
			if nd.Aux, err = aux.ReadNodeAux(nd, n.Aux); err != nil {
				return nil, fmt.Errorf("node %d aux: %w", n.Index, err)
			}
		}
	}

	for _, e := range data.Edges {
		from, to := graph.NodeID(e.From), graph.NodeID(e.To)
		ed, err := g.RestoreEdge(from, to, e.Label)
		if errors.Is(err, graph.ErrDuplicateEdge) {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "edge %d->%d", e.From, e.To)
		}
		if err != nil {
			missing := e.From
			if g.HasNode(from) {
				missing = e.To
			}
			ref := &apperrors.ReferenceError{From: e.From, To: e.To, Missing: missing}
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidGraph, ref, "edge %d->%d", e.From, e.To)
		}
		if aux != nil {
			if ed.Aux, err = aux.ReadEdgeAux(ed, e.Aux); err != nil {
				return nil, fmt.Errorf("edge %d->%d aux: %w", e.From, e.To, err)
			}
		}
	}

	return g, nil
}

// Unmarshal decodes a document held in memory. See [ReadJSON].
func Unmarshal(data []byte, opts ...graph.Option) (*graph.Graph, error) {
	return ReadJSON(bytes.NewReader(data), opts...)
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
//
// A missing file is reported with code FILE_NOT_FOUND; otherwise ImportJSON
// returns the same errors as [ReadJSON].
func ImportJSON(path string, opts ...graph.Option) (*graph.Graph, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts...)
}
