package editor

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/geom"
	"github.com/matzehuels/graphedit/pkg/graph"
	"github.com/matzehuels/graphedit/pkg/render"
)

// SelfLoopThreshold is the angle, in radians, the pointer must travel around
// a node before a drag back onto it counts as a self-loop.
const SelfLoopThreshold = math.Pi / 3

// State is the gesture the editor is in.
type State int

const (
	// Idle means no button is held; moves only update hover.
	Idle State = iota
	// DraggingNode means a node was pressed and follows the pointer.
	DraggingNode
	// DraggingEdge means a provisional edge is being drawn from a node rim.
	DraggingEdge
)

// String returns the lower-case state name used in logs.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DraggingNode:
		return "dragging node"
	case DraggingEdge:
		return "dragging edge"
	}
	return "unknown"
}

// Editor is the interaction controller for one graph.
type Editor struct {
	g      *graph.Graph
	vp     render.Viewport
	logger *log.Logger

	state  State
	active graph.Entity
	hover  graph.Entity

	// Gesture data in world coordinates.
	dragNode  graph.NodeID
	lastDrag  geom.Point
	edgeStart graph.NodeID
	dragEdge0 geom.Point
	dragEdge1 geom.Point

	listeners    []*listenerEntry
	nextListener ListenerID
	notifying    int
}

// Option configures an [Editor].
type Option func(*Editor)

// WithBounds sets the pixel rectangle the graph is shown in.
func WithBounds(r geom.Rect) Option {
	return func(e *Editor) { e.vp.SetBounds(r) }
}

// WithLogger sets the logger gestures are reported to at debug level.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an editor for g. Without [WithBounds] the viewport is empty
// and every pointer event lands on the world origin.
func New(g *graph.Graph, opts ...Option) *Editor {
	e := &Editor{g: g, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the edited graph.
func (e *Editor) Graph() *graph.Graph { return e.g }

// Viewport returns the current world-to-pixel mapping.
func (e *Editor) Viewport() render.Viewport { return e.vp }

// SetBounds refits the viewport to a new pixel rectangle.
func (e *Editor) SetBounds(r geom.Rect) {
	e.vp.SetBounds(r)
	e.requestRepaint()
}

// State returns the current gesture state.
func (e *Editor) State() State { return e.state }

// Active returns the selected entity.
func (e *Editor) Active() graph.Entity { return e.active }

// Hover returns the entity under the pointer.
func (e *Editor) Hover() graph.Entity { return e.hover }

// DraggedEdge returns the provisional edge being drawn, in world
// coordinates. ok is false unless an edge drag is in progress.
func (e *Editor) DraggedEdge() (from, to geom.Point, ok bool) {
	return e.dragEdge0, e.dragEdge1, e.state == DraggingEdge
}

// SetActive selects ent. Entities not in the graph clear the selection.
func (e *Editor) SetActive(ent graph.Entity) {
	if !e.g.Contains(ent) {
		ent = graph.NoEntity
	}
	e.setActive(ent)
}

func (e *Editor) setActive(ent graph.Entity) {
	if ent == e.active {
		return
	}
	e.active = ent
	e.requestRepaint()
	e.notify(func(l Listener) { l.EntitySelected(ent) })
}

func (e *Editor) setHover(ent graph.Entity) {
	if ent == e.hover {
		return
	}
	e.hover = ent
	e.requestRepaint()
	e.notify(func(l Listener) { l.EntityHovered(ent) })
}

// DoubleClick creates a node at p unless a node or edge is already there.
// The new node becomes active and hovered.
func (e *Editor) DoubleClick(p geom.Point) {
	pos := e.vp.ToWorld(p)
	if e.g.EntityAt(pos) != graph.NoEntity {
		return
	}

	id := e.g.AddNode(pos)
	e.logger.Debug("create node", "id", id, "pos", pos)

	ent := graph.NodeEntity(id)
	e.setHover(ent)
	e.setActive(ent)
	e.requestRepaint()
	e.dirty()
}

// Press selects what is under p. On a node it also starts a gesture: near
// the center a node drag, near the rim an edge drag.
func (e *Editor) Press(p geom.Point) {
	pos := e.vp.ToWorld(p)

	if n, ok := e.g.NodeAt(pos); ok {
		e.setActive(graph.NodeEntity(n.ID))
		if geom.IsCloseTo(pos, n.Position(), graph.NodeRadius-graph.EdgeTolerance) {
			e.state = DraggingNode
			e.dragNode = n.ID
			e.lastDrag = pos
		} else {
			e.state = DraggingEdge
			e.edgeStart = n.ID
			e.dragEdge0, e.dragEdge1 = pos, pos
		}
		e.logger.Debug("press", "node", n.ID, "state", e.state)
		return
	}

	if ed, ok := e.g.EdgeAt(pos); ok {
		e.setActive(graph.EdgeEntity(ed.Key()))
		return
	}
	e.setActive(graph.NoEntity)
}

// Move tracks the pointer: it updates hover when idle and advances the
// current drag otherwise.
func (e *Editor) Move(p geom.Point) {
	pos := e.vp.ToWorld(p)

	switch e.state {
	case Idle:
		e.setHover(e.g.EntityAt(pos))

	case DraggingNode:
		n, ok := e.g.Node(e.dragNode)
		if !ok {
			e.state = Idle
			return
		}
		e.g.MoveNode(n.ID, n.Position().Add(pos.Sub(e.lastDrag)))
		e.lastDrag = pos
		e.requestRepaint()
		e.dirty()

	case DraggingEdge:
		e.dragEdge1 = pos
		if n, ok := e.g.NodeAt(pos); ok {
			e.setHover(graph.NodeEntity(n.ID))
		} else {
			e.setHover(graph.NoEntity)
		}
		e.requestRepaint()
	}
}

// Release ends the current drag. An edge drag commits an edge if it ends
// over a node.
func (e *Editor) Release(p geom.Point) {
	if e.state == Idle {
		return
	}
	if e.state == DraggingEdge {
		e.finishEdge(e.vp.ToWorld(p))
	}
	e.state = Idle
	e.requestRepaint()
}

func (e *Editor) finishEdge(pos geom.Point) {
	end, ok := e.g.NodeAt(pos)
	if !ok {
		e.logger.Debug("edge drag aborted", "reason", "no target")
		return
	}
	start, ok := e.g.Node(e.edgeStart)
	if !ok {
		return
	}

	if end.ID == start.ID {
		center := start.Position()
		theta0 := e.dragEdge0.Sub(center).Angle()
		theta1 := pos.Sub(center).Angle()
		if math.Abs(geom.NormalizeAngle(theta1-theta0)) < SelfLoopThreshold {
			e.logger.Debug("edge drag aborted", "reason", "loop angle too small")
			return
		}
	}

	edge, exists := e.g.EdgeBetween(start.ID, end.ID)
	if !exists {
		edge = e.g.AddEdge(start.ID, end.ID, "")
		e.logger.Debug("create edge", "from", start.ID, "to", end.ID)
		e.dirty()
	}
	e.setActive(graph.EdgeEntity(edge.Key()))
}

// DeleteNode removes a node and its edges. Any selected or hovered edge is
// deselected as well, since it may have been one of them.
func (e *Editor) DeleteNode(id graph.NodeID) {
	if !e.g.HasNode(id) {
		return
	}
	e.g.RemoveNode(id)
	e.logger.Debug("delete node", "id", id)

	if (e.active.IsNode() && e.active.Node == id) || e.active.IsEdge() {
		e.setActive(graph.NoEntity)
	}
	if (e.hover.IsNode() && e.hover.Node == id) || e.hover.IsEdge() {
		e.setHover(graph.NoEntity)
	}
	if (e.state == DraggingNode && e.dragNode == id) || (e.state == DraggingEdge && e.edgeStart == id) {
		e.state = Idle
	}
	e.requestRepaint()
	e.dirty()
}

// DeleteEdge removes an edge.
func (e *Editor) DeleteEdge(k graph.EdgeKey) {
	if !e.g.HasEdge(k.From, k.To) {
		return
	}
	e.g.RemoveEdge(k.From, k.To)
	e.logger.Debug("delete edge", "edge", k)

	ent := graph.EdgeEntity(k)
	if e.active == ent {
		e.setActive(graph.NoEntity)
	}
	if e.hover == ent {
		e.setHover(graph.NoEntity)
	}
	e.requestRepaint()
	e.dirty()
}

// DeleteActive removes the selected entity, if any.
func (e *Editor) DeleteActive() {
	switch e.active.Kind {
	case graph.EntityNode:
		e.DeleteNode(e.active.Node)
	case graph.EntityEdge:
		e.DeleteEdge(e.active.Edge)
	}
}

// Relabel sets the label of ent. Labels are validated with
// [apperrors.ValidateLabel]; relabeling a missing entity is a no-op.
func (e *Editor) Relabel(ent graph.Entity, label string) error {
	if err := apperrors.ValidateLabel(label); err != nil {
		return err
	}

	var changed bool
	switch ent.Kind {
	case graph.EntityNode:
		if n, ok := e.g.Node(ent.Node); ok && n.Label != label {
			changed = e.g.SetNodeLabel(ent.Node, label)
		}
	case graph.EntityEdge:
		if ed, ok := e.g.EdgeBetween(ent.Edge.From, ent.Edge.To); ok && ed.Label != label {
			changed = e.g.SetEdgeLabel(ent.Edge.From, ent.Edge.To, label)
		}
	}
	if changed {
		e.logger.Debug("relabel", "entity", ent, "label", label)
		e.requestRepaint()
		e.dirty()
	}
	return nil
}

// RelabelActive sets the label of the selected entity.
func (e *Editor) RelabelActive(label string) error {
	return e.Relabel(e.active, label)
}
