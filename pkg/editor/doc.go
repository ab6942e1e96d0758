// Package editor turns pointer gestures into graph edits.
//
// # Overview
//
// An [Editor] owns a [graph.Graph] and a [render.Viewport]. Hosts forward
// pointer events in pixel coordinates ([Editor.DoubleClick],
// [Editor.Press], [Editor.Move], [Editor.Release]) and draw the result with
// [Editor.Draw]. The editor keeps two selections:
//
//   - the active entity, chosen by pressing on it
//   - the hover entity, whatever node or edge is under the pointer
//
// # Gestures
//
// Double-clicking empty space creates a node. Pressing near the center of a
// node and dragging moves it; pressing near its rim and dragging draws a
// provisional edge, committed on release over a node. Releasing over the
// start node creates a self-loop only if the pointer travelled at least 60
// degrees around it, so plain clicks on a rim never create loops. Releasing
// over a node that already has the edge selects the existing edge.
//
//	ed := editor.New(graph.New(), editor.WithBounds(geom.Rect{W: 1000, H: 600}))
//	ed.DoubleClick(geom.Pt(200, 200)) // node 0
//	ed.DoubleClick(geom.Pt(400, 200)) // node 1
//	ed.Press(geom.Pt(230, 200))       // rim of node 0
//	ed.Move(geom.Pt(400, 200))
//	ed.Release(geom.Pt(400, 200))     // edge 0->1, now active
//
// # Listeners
//
// A [Listener] hears four things: repaint requests (any visual change),
// dirty notifications (unsaved edits only), and changes of the active and
// hover entities. Listeners run synchronously, in registration order, and
// may add or remove listeners while being notified; removals take effect
// once the current notification finishes.
//
// # Concurrency
//
// An Editor is not safe for concurrent use. Hosts that receive events on
// several goroutines guard the editor, its graph and its layout with one
// lock.
//
// [graph.Graph]: github.com/matzehuels/graphedit/pkg/graph
// [render.Viewport]: github.com/matzehuels/graphedit/pkg/render
package editor
