package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/payload"
)

func TestIsFileRef(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"dfa", false},
		{"dfa-2", false},
		{"dfa.json", true},
		{"./dfa", true},
		{"graphs/dfa", true},
		{`graphs\dfa`, true},
	}
	for _, tt := range tests {
		if got := isFileRef(tt.arg); got != tt.want {
			t.Errorf("isFileRef(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

// newTestCLI returns a CLI whose document store lives in a temp dir.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	c := New(os.Stderr, LogInfo)
	c.config().Store.URL = t.TempDir()
	return c
}

func TestDocumentBase(t *testing.T) {
	tests := []struct {
		doc  *document
		want string
	}{
		{&document{name: "dfa"}, "dfa"},
		{&document{path: "graphs/dfa.json"}, "dfa"},
		{&document{path: "nfa"}, "nfa"},
	}
	for _, tt := range tests {
		if got := tt.doc.base(); got != tt.want {
			t.Errorf("%s.base() = %q, want %q", tt.doc, got, tt.want)
		}
	}
}

func TestOpenDocumentInvalidName(t *testing.T) {
	c := newTestCLI(t)
	_, err := c.openDocument(context.Background(), "bad name!")
	if !apperrors.Is(err, apperrors.ErrCodeInvalidName) {
		t.Errorf("openDocument() error = %v, want %s", err, apperrors.ErrCodeInvalidName)
	}
}

func TestFileDocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "nested", "dfa.json")

	doc, err := c.openDocument(ctx, path)
	if err != nil {
		t.Fatalf("openDocument() error: %v", err)
	}
	defer doc.close()
	if doc.store != nil {
		t.Fatal("file document opened a store")
	}

	if ok, err := doc.exists(ctx); err != nil || ok {
		t.Fatalf("exists() = %v, %v, want false, nil", ok, err)
	}

	g := graph.New()
	a := g.AddNode(geom.Pt(0.2, 0.2))
	b := g.AddNode(geom.Pt(0.4, 0.2))
	g.AddEdge(a, b, "x")
	if err := doc.save(ctx, g); err != nil {
		t.Fatalf("save() error: %v", err)
	}

	if ok, err := doc.exists(ctx); err != nil || !ok {
		t.Fatalf("exists() after save = %v, %v, want true, nil", ok, err)
	}
	got, err := doc.load(ctx)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if got.NodeCount() != 2 || got.EdgeCount() != 1 {
		t.Errorf("loaded %d nodes, %d edges, want 2, 1", got.NodeCount(), got.EdgeCount())
	}
}

func TestStoreDocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestCLI(t)
	c.config().Editor.IDs = true

	doc, err := c.openDocument(ctx, "dfa")
	if err != nil {
		t.Fatalf("openDocument() error: %v", err)
	}
	defer doc.close()
	if doc.store == nil {
		t.Fatal("store document has no store")
	}

	if ok, err := doc.exists(ctx); err != nil || ok {
		t.Fatalf("exists() = %v, %v, want false, nil", ok, err)
	}

	g := graph.New(doc.auxOption())
	g.AddNode(geom.Pt(0.5, 0.3))
	if err := doc.save(ctx, g); err != nil {
		t.Fatalf("save() error: %v", err)
	}

	got, err := doc.load(ctx)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if got.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", got.NodeCount())
	}
	if _, ok := got.Aux().(*payload.UUID); !ok {
		t.Errorf("Aux() = %T, want *payload.UUID", got.Aux())
	}

	names, err := doc.store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(names) != 1 || names[0] != "dfa" {
		t.Errorf("List() = %v, want [dfa]", names)
	}
}
