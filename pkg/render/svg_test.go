package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/graph"
)

func TestRenderSVG(t *testing.T) {
	g := graph.New()
	a := g.AddNode(geom.Pt(0.2, 0.2))
	b := g.AddNode(geom.Pt(0.4, 0.2))
	g.SetNodeLabel(a, "<a&b>")
	g.AddEdge(a, b, "")
	g.AddEdge(b, b, "")

	svg := string(RenderSVG(g, WithSize(1200, 600)))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("not a complete svg document:\n%s", svg)
	}
	if !strings.Contains(svg, `width="1200" height="600"`) {
		t.Error("size not applied")
	}
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("circles = %d, want 3 (two nodes, one loop)", got)
	}
	if !strings.Contains(svg, "&lt;a&amp;b&gt;") {
		t.Error("label not escaped")
	}
	if !strings.Contains(svg, `fill="white"`) {
		t.Error("default background missing")
	}
}

func TestRenderSVGOverlay(t *testing.T) {
	g := graph.New()
	called := false
	svg := RenderSVG(g, WithBackground(""), WithOverlay(func(c Canvas, vp Viewport) {
		called = true
		DrawArrow(c, vp, geom.Pt(0.1, 0.1), geom.Pt(0.3, 0.1), 3.0/1000, "red")
	}))

	if !called {
		t.Fatal("overlay not called")
	}
	if got := bytes.Count(svg, []byte(`stroke="red"`)); got != 3 {
		t.Errorf("red strokes = %d, want 3", got)
	}
	if bytes.Contains(svg, []byte("<rect")) {
		t.Error("background drawn despite empty color")
	}
}

func TestSVGBytesIdempotent(t *testing.T) {
	s := NewSVG(10, 10, "")
	first := string(s.Bytes())
	second := string(s.Bytes())
	if first != second || strings.Count(second, "</svg>") != 1 {
		t.Errorf("Bytes() not idempotent:\n%s\n%s", first, second)
	}
}

func TestSVGTextAttributes(t *testing.T) {
	s := NewSVG(100, 100, "")
	s.Text(Text{At: geom.Pt(10, 20), Content: "hi", Font: "serif", Size: 12, Color: "black",
		Italic: true, Anchor: AnchorMiddle, Baseline: BaselineCentral, Rotate: 0.5})
	out := string(s.Bytes())

	for _, want := range []string{`font-style="italic"`, `text-anchor="middle"`, `dominant-baseline="central"`, `transform="rotate(28.65 10.00 20.00)"`, ">hi</text>"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in\n%s", want, out)
		}
	}
}
