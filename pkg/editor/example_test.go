package editor_test

import (
	"fmt"

	"github.com/matzehuels/graphedit/pkg/editor"
	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/graph"
)

func Example() {
	ed := editor.New(graph.New(), editor.WithBounds(geom.Rect{W: 1000, H: 600}))
	ed.AddListener(editor.Funcs{
		OnSelected: func(e graph.Entity) { fmt.Println("selected", e) },
	})

	ed.DoubleClick(geom.Pt(200, 200))
	ed.DoubleClick(geom.Pt(400, 200))

	// Press on the rim of the first node and drag onto the second.
	ed.Press(geom.Pt(230, 200))
	ed.Move(geom.Pt(400, 200))
	ed.Release(geom.Pt(400, 200))

	fmt.Println(ed.Graph().EdgeCount(), "edge")
	// Output:
	// selected node 0
	// selected node 1
	// selected node 0
	// selected edge 0->1
	// 1 edge
}
