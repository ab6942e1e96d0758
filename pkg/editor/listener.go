package editor

import "github.com/matzehuels/graphedit/pkg/graph"

// Listener receives editor notifications.
type Listener interface {
	// NeedsRepaint fires on any visual change.
	NeedsRepaint()
	// Dirty fires when the graph was edited.
	Dirty()
	// EntitySelected fires when the active entity changes.
	EntitySelected(graph.Entity)
	// EntityHovered fires when the hover entity changes.
	EntityHovered(graph.Entity)
}

// Funcs adapts optional callbacks to a [Listener]. Nil fields are skipped.
type Funcs struct {
	OnRepaint  func()
	OnDirty    func()
	OnSelected func(graph.Entity)
	OnHovered  func(graph.Entity)
}

// NeedsRepaint calls OnRepaint.
func (f Funcs) NeedsRepaint() {
	if f.OnRepaint != nil {
		f.OnRepaint()
	}
}

// Dirty calls OnDirty.
func (f Funcs) Dirty() {
	if f.OnDirty != nil {
		f.OnDirty()
	}
}

// EntitySelected calls OnSelected with e.
func (f Funcs) EntitySelected(e graph.Entity) {
	if f.OnSelected != nil {
		f.OnSelected(e)
	}
}

// EntityHovered calls OnHovered with e.
func (f Funcs) EntityHovered(e graph.Entity) {
	if f.OnHovered != nil {
		f.OnHovered(e)
	}
}

// ListenerID identifies a registered listener.
type ListenerID int

type listenerEntry struct {
	id      ListenerID
	l       Listener
	removed bool
}

// AddListener registers l and returns an id for [Editor.RemoveListener].
// A listener added during a notification first hears the next one.
func (e *Editor) AddListener(l Listener) ListenerID {
	e.nextListener++
	e.listeners = append(e.listeners, &listenerEntry{id: e.nextListener, l: l})
	return e.nextListener
}

// RemoveListener unregisters the listener with the given id. Unknown ids
// are ignored. During a notification the listener is skipped from then on
// and dropped when the notification completes.
func (e *Editor) RemoveListener(id ListenerID) {
	for _, entry := range e.listeners {
		if entry.id == id {
			entry.removed = true
		}
	}
	if e.notifying == 0 {
		e.compactListeners()
	}
}

func (e *Editor) notify(fn func(Listener)) {
	e.notifying++
	n := len(e.listeners)
	for i := 0; i < n; i++ {
		if entry := e.listeners[i]; !entry.removed {
			fn(entry.l)
		}
	}
	e.notifying--
	if e.notifying == 0 {
		e.compactListeners()
	}
}

func (e *Editor) compactListeners() {
	kept := e.listeners[:0]
	for _, entry := range e.listeners {
		if !entry.removed {
			kept = append(kept, entry)
		}
	}
	clear(e.listeners[len(kept):])
	e.listeners = kept
}

func (e *Editor) requestRepaint() { e.notify(Listener.NeedsRepaint) }
func (e *Editor) dirty()          { e.notify(Listener.Dirty) }
