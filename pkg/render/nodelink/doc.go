// Package nodelink exports graphs to Graphviz.
//
// # Overview
//
// [ToDOT] writes a graph as DOT source with every node pinned at its editor
// position (pos="x,y!"), so Graphviz's neato engine draws the same picture
// the editor shows and only routes the edges. Labels and the node radius
// carry over; the world is scaled to [Options.Scale] inches per unit.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PNG is rendered by Graphviz directly; PDF goes through SVG and
// rsvg-convert:
//
//	png, err := nodelink.RenderPNG(ctx, dot)
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//
// The DOT text can also be saved and processed with external Graphviz
// tools (neato -n2 keeps the pinned positions).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
