package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/graph"
)

func buildGraph() *graph.Graph {
	g := graph.New()
	a := g.AddNode(geom.Pt(0.2, 0.2))
	b := g.AddNode(geom.Pt(0.4, 0.2))
	c := g.AddNode(geom.Pt(0.3, 0.4))
	g.SetNodeLabel(a, "q0")
	g.SetNodeLabel(c, "q2")
	g.AddEdge(a, c, "a")
	g.AddEdge(c, a, "b")
	g.AddEdge(c, c, "loop")
	g.RemoveNode(b)
	return g
}

func TestRoundTrip(t *testing.T) {
	g := buildGraph()

	data, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, data)
	}

	if got.NodeCount() != g.NodeCount() || got.EdgeCount() != g.EdgeCount() {
		t.Fatalf("counts = %d nodes, %d edges, want %d, %d",
			got.NodeCount(), got.EdgeCount(), g.NodeCount(), g.EdgeCount())
	}
	for _, want := range g.Nodes() {
		n, ok := got.Node(want.ID)
		if !ok {
			t.Errorf("node %d missing", want.ID)
			continue
		}
		if n.Label != want.Label || n.Position() != want.Position() {
			t.Errorf("node %d = (%q, %v), want (%q, %v)",
				want.ID, n.Label, n.Position(), want.Label, want.Position())
		}
	}
	for _, want := range g.Edges() {
		e, ok := got.EdgeBetween(want.From, want.To)
		if !ok || e.Label != want.Label {
			t.Errorf("edge %v = %v, want label %q", want.Key(), e, want.Label)
		}
	}

	again, err := Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("second export differs:\n%s\nvs\n%s", data, again)
	}
}

func TestReadRestoresFreeIDs(t *testing.T) {
	doc := `{
	  "nodes": [
	    {"index": 0, "label": "a", "pos": [0.2, 0.2]},
	    {"index": 3, "label": "b", "pos": [0.4, 0.2]}
	  ],
	  "edges": [{"from": 3, "to": 0, "label": "x"}]
	}`
	g, err := ReadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if !g.HasEdge(3, 0) {
		t.Error("edge 3->0 missing")
	}
	for _, want := range []graph.NodeID{1, 2, 4} {
		if got := g.AddNode(geom.Pt(0.5, 0.3)); got != want {
			t.Errorf("AddNode() = %d, want %d", got, want)
		}
	}
}

func TestReadSparseIndex(t *testing.T) {
	doc := `{"nodes": [{"index": 1099511627776, "label": "far", "pos": [0.5, 0.3]}]}`
	g, err := ReadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if got := g.AddNode(geom.Pt(0.2, 0.3)); got != 0 {
		t.Errorf("AddNode() = %d, want 0", got)
	}
	if !g.HasNode(1 << 40) {
		t.Error("node 1<<40 missing")
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code apperrors.Code
	}{
		{"Malformed", `{"nodes": [`, apperrors.ErrCodeInvalidFormat},
		{"WrongType", `{"nodes": "none"}`, apperrors.ErrCodeInvalidFormat},
		{
			"UnknownIndex",
			`{"nodes": [{"index": 0, "pos": [0.2, 0.2]}], "edges": [{"from": 0, "to": 7}]}`,
			apperrors.ErrCodeInvalidGraph,
		},
		{
			"DuplicateIndex",
			`{"nodes": [{"index": 1, "pos": [0.2, 0.2]}, {"index": 1, "pos": [0.4, 0.2]}]}`,
			apperrors.ErrCodeDuplicateNode,
		},
		{
			"DuplicateEdge",
			`{"nodes": [{"index": 0, "pos": [0.2, 0.2]}, {"index": 1, "pos": [0.4, 0.2]}],
			  "edges": [{"from": 0, "to": 1, "label": "a"}, {"from": 0, "to": 1, "label": "b"}]}`,
			apperrors.ErrCodeInvalidGraph,
		},
		{
			"NegativeIndex",
			`{"nodes": [{"index": -2, "pos": [0.2, 0.2]}]}`,
			apperrors.ErrCodeInvalidGraph,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadJSON(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatalf("ReadJSON() = %v, want error", g)
			}
			if g != nil {
				t.Error("partial graph returned with error")
			}
			if got := apperrors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestReadUnknownIndexReportsReference(t *testing.T) {
	doc := `{"nodes": [{"index": 0, "pos": [0.2, 0.2]}], "edges": [{"from": 5, "to": 0}]}`
	_, err := ReadJSON(strings.NewReader(doc))

	var ref *apperrors.ReferenceError
	if !errors.As(err, &ref) {
		t.Fatalf("error = %v, want ReferenceError", err)
	}
	if ref.Missing != 5 {
		t.Errorf("Missing = %d, want 5", ref.Missing)
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.json")
	if err := ExportJSON(buildGraph(), path); err != nil {
		t.Fatal(err)
	}
	g, err := ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := g.NodeLabeled("q2"); !ok || n.ID != 2 {
		t.Errorf("NodeLabeled(q2) = %v, %v, want node 2", n, ok)
	}

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

// tagAux stores string payloads and a graph-level tag.
type tagAux struct {
	graphTag string
}

func (a *tagAux) NewNode(n *graph.Node) any { return "new" }
func (a *tagAux) NewEdge(e *graph.Edge) any { return "new" }

func (a *tagAux) ReadNodeAux(n *graph.Node, raw json.RawMessage) (any, error) {
	var s string
	err := json.Unmarshal(raw, &s)
	return s, err
}

func (a *tagAux) ReadEdgeAux(e *graph.Edge, raw json.RawMessage) (any, error) {
	var s string
	err := json.Unmarshal(raw, &s)
	return s, err
}

func (a *tagAux) WriteNodeAux(v any) (json.RawMessage, error) { return json.Marshal(v) }
func (a *tagAux) WriteEdgeAux(v any) (json.RawMessage, error) { return json.Marshal(v) }

func (a *tagAux) ReadAux(raw json.RawMessage) error {
	return json.Unmarshal(raw, &a.graphTag)
}

func (a *tagAux) WriteAux() (json.RawMessage, error) { return json.Marshal(a.graphTag) }

func TestAuxRoundTrip(t *testing.T) {
	src := &tagAux{graphTag: "doc-1"}
	g := graph.New(graph.WithAux(src))
	a := g.AddNode(geom.Pt(0.2, 0.2))
	b := g.AddNode(geom.Pt(0.4, 0.2))
	g.AddEdge(a, b, "")
	n, _ := g.Node(b)
	n.Aux = "custom"

	data, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}

	dst := &tagAux{}
	got, err := Unmarshal(data, graph.WithAux(dst))
	if err != nil {
		t.Fatal(err)
	}
	if dst.graphTag != "doc-1" {
		t.Errorf("graph aux = %q, want doc-1", dst.graphTag)
	}
	if n, _ := got.Node(b); n.Aux != "custom" {
		t.Errorf("node aux = %v, want custom", n.Aux)
	}
	if e, _ := got.EdgeBetween(a, b); e.Aux != "new" {
		t.Errorf("edge aux = %v, want new", e.Aux)
	}
}

func TestWriteWithoutAuxWritesNull(t *testing.T) {
	g := graph.New()
	g.AddNode(geom.Pt(0.2, 0.2))

	data, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["aux"]) != "null" {
		t.Errorf("aux = %s, want null", raw["aux"])
	}
}
