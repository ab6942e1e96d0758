// Package pkg provides the core libraries of graphedit, an editor for small
// directed graphs such as finite automata.
//
// # Overview
//
// Nodes are placed by hand in a fixed world rectangle; edges, arrowheads
// and self-loops are laid out automatically whenever the graph changes. The
// pkg directory is organized into four areas:
//
//  1. Model: [geom] and [graph] hold the geometry kernel, the graph, its
//     edge layout and hit testing.
//  2. Interaction: [editor] turns pointer gestures into graph edits.
//  3. Output: [render] draws graphs on a Canvas (SVG, terminal) and
//     [render/nodelink] exports them to Graphviz.
//  4. Persistence: [io] reads and writes the JSON document format, [payload]
//     supplies per-entity aux data, [storage] keeps named documents in a
//     directory, Redis or MongoDB, and [cache] keeps rendered artifacts.
//
// [config], [errors], [observability] and [buildinfo] are shared by all of
// them and by the command-line interface in internal/cli.
//
// # Data Flow
//
//	pointer events
//	      ↓
//	[editor] (gestures, selection)
//	      ↓
//	[graph] (mutation → edge layout)
//	      ↓
//	[render] ──→ SVG / terminal / DOT
//	      ↓
//	[io] ──→ [storage]
//
// # Quick Start
//
//	g := graph.New()
//	a := g.AddNode(geom.Pt(0.2, 0.3))
//	b := g.AddNode(geom.Pt(0.6, 0.3))
//	g.AddEdge(a, b, "x")
//	g.AddEdge(b, b, "y") // placed as a self-loop
//
//	svg := render.RenderSVG(g, render.WithSize(1000, 600))
//	data, _ := io.Marshal(g)
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/geom
// [graph]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/graph
// [editor]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/editor
// [render]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/io
// [payload]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/payload
// [storage]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/storage
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/graphedit/pkg/buildinfo
package pkg
