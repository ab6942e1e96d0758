// Package render draws editable graphs.
//
// # Overview
//
// Drawing is split into three pieces:
//
//   - [Viewport] maps between world coordinates, where the graph lives, and
//     pixel coordinates of whatever surface shows it
//   - [Canvas] is the drawing surface: lines, circles and text in pixels
//   - [Draw] walks a graph and paints edges under nodes onto a Canvas,
//     applying per-node and per-edge [NodeStyle] and [EdgeStyle] overrides
//
// [SVG] is the Canvas used for files and the preview server; the terminal
// editor supplies its own cell-grid Canvas.
//
// # Viewport
//
// The world is the rectangle [0,1] × [0,3/5]. A Viewport fits the largest
// rectangle of that aspect ratio into the bounds it is given, centered, and
// scales both axes by its pixel width:
//
//	vp := render.NewViewport(geom.Rect{W: 1200, H: 600})
//	vp.ComputedBounds() // {X: 100, Y: 0, W: 1000, H: 600}
//	vp.ToPixel(geom.Pt(0.2, 0.2)) // (300, 200)
//
// # Labels
//
// Edge labels sit at the middle of the edge, offset to one side and rotated
// along it, and are flipped so they are never drawn upside down. Loop labels
// sit on an invisible tangent line beyond the loop. Whitespace in labels is
// drawn as non-breaking spaces, see [NormalizeLabel].
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert SVG to other formats using the
// external rsvg-convert tool (from librsvg).
//
//	svg := render.RenderSVG(g)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// # Node-Link Export
//
// The [nodelink] subpackage exports graphs as Graphviz DOT with pinned
// positions and renders them through Graphviz.
//
// [nodelink]: github.com/matzehuels/graphedit/pkg/render/nodelink
package render
