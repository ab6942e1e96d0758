package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphedit/pkg/cache"
	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/graph"
	graphio "github.com/matzehuels/graphedit/pkg/io"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   string
		want  []string
	}{
		{"empty uses default", "", "png", []string{"png"}},
		{"empty without default", "", "", []string{"svg"}},
		{"single format", "svg", "png", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", "", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , dot ,", "", []string{"svg", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input, tt.def)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q, %q) = %v, want %v", tt.input, tt.def, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q, %q)[%d] = %q, want %q", tt.input, tt.def, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"all valid", []string{"svg", "png", "pdf", "dot", "json"}, false},
		{"invalid", []string{"svg", "gif"}, true},
		{"empty", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEngine(t *testing.T) {
	tests := []struct {
		engine  string
		wantErr bool
	}{
		{engineNative, false},
		{engineGraphviz, false},
		{"", true},
		{"dot", true},
	}

	for _, tt := range tests {
		if err := validateEngine(tt.engine); (err != nil) != tt.wantErr {
			t.Errorf("validateEngine(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, base, format string
		n                    int
		want                 string
	}{
		{"", "dfa", "svg", 1, "dfa.svg"},
		{"", "dfa", "png", 2, "dfa.png"},
		{"out/graph.svg", "dfa", "svg", 1, "out/graph.svg"},
		{"out/graph.svg", "dfa", "pdf", 2, "out/graph.pdf"},
		{"out/graph", "dfa", "dot", 2, "out/graph.dot"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.output, tt.base, tt.format, tt.n); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q, %d) = %q, want %q", tt.output, tt.base, tt.format, tt.n, got, tt.want)
		}
	}
}

func TestSlowFormat(t *testing.T) {
	tests := []struct {
		format, engine string
		want           bool
	}{
		{formatSVG, engineNative, false},
		{formatSVG, engineGraphviz, true},
		{formatPNG, engineNative, true},
		{formatDOT, engineGraphviz, false},
	}
	for _, tt := range tests {
		if got := slowFormat(tt.format, tt.engine); got != tt.want {
			t.Errorf("slowFormat(%q, %q) = %v, want %v", tt.format, tt.engine, got, tt.want)
		}
	}
}

func testGraph() *graph.Graph {
	g := graph.New()
	a := g.AddNode(geom.Pt(0.2, 0.3))
	b := g.AddNode(geom.Pt(0.6, 0.3))
	g.SetNodeLabel(a, "q0")
	g.SetNodeLabel(b, "q1")
	g.AddEdge(a, b, "a")
	g.AddEdge(b, b, "b")
	return g
}

func TestDrawArtifact(t *testing.T) {
	ctx := context.Background()
	g := testGraph()
	opts := renderOpts{engine: engineNative, width: 500, height: 300}

	svg, err := drawArtifact(ctx, g, formatSVG, opts)
	if err != nil {
		t.Fatalf("drawArtifact(svg) error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("q1")) {
		t.Errorf("native svg missing <svg> tag or labels")
	}

	dot, err := drawArtifact(ctx, g, formatDOT, opts)
	if err != nil {
		t.Fatalf("drawArtifact(dot) error: %v", err)
	}
	if !bytes.HasPrefix(dot, []byte("digraph")) {
		t.Errorf("dot output = %q, want a digraph", dot)
	}

	if _, err := drawArtifact(ctx, g, "gif", opts); err == nil {
		t.Error("drawArtifact(gif) error = nil, want unsupported format")
	}
}

func TestArtifactRendererCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := &artifactRenderer{cache: fc, ttl: time.Hour, logger: log.New(io.Discard)}

	g := testGraph()
	docJSON, err := graphio.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	opts := renderOpts{engine: engineNative, width: 500, height: 300}

	first, cached, err := r.render(ctx, g, docJSON, formatSVG, opts)
	if err != nil || cached {
		t.Fatalf("first render = cached %v, error %v, want fresh", cached, err)
	}
	second, cached, err := r.render(ctx, g, docJSON, formatSVG, opts)
	if err != nil || !cached {
		t.Fatalf("second render = cached %v, error %v, want cached", cached, err)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached artifact differs from the rendered one")
	}

	opts.width = 800
	if _, cached, _ := r.render(ctx, g, docJSON, formatSVG, opts); cached {
		t.Error("render with other options hit the cache")
	}

	out, cached, err := r.render(ctx, g, docJSON, formatJSON, opts)
	if err != nil || cached || !bytes.Equal(out, docJSON) {
		t.Errorf("json render = %q, cached %v, error %v, want the document", out, cached, err)
	}
}
