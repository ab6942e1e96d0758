package payload

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/graphedit/pkg/graph"
)

// Meta is the payload [UUID] attaches to nodes, edges and documents.
type Meta struct {
	ID uuid.UUID `json:"id"`
}

// UUID is an aux provider that assigns random UUIDs.
type UUID struct {
	doc   uuid.UUID
	newID func() uuid.UUID
}

var _ graph.AuxProvider = (*UUID)(nil)

// NewUUID returns a provider with a fresh document id.
func NewUUID() *UUID {
	return &UUID{doc: uuid.New(), newID: uuid.New}
}

// DocumentID returns the id of the document, read from its aux value when
// one was present.
func (p *UUID) DocumentID() uuid.UUID { return p.doc }

func (p *UUID) NewNode(*graph.Node) any { return &Meta{ID: p.newID()} }
func (p *UUID) NewEdge(*graph.Edge) any { return &Meta{ID: p.newID()} }

func (p *UUID) ReadNodeAux(_ *graph.Node, raw json.RawMessage) (any, error) { return p.read(raw) }
func (p *UUID) ReadEdgeAux(_ *graph.Edge, raw json.RawMessage) (any, error) { return p.read(raw) }

func (p *UUID) WriteNodeAux(aux any) (json.RawMessage, error) { return write(aux) }
func (p *UUID) WriteEdgeAux(aux any) (json.RawMessage, error) { return write(aux) }

// ReadAux reads the document id. Documents without one keep the id the
// provider was created with.
func (p *UUID) ReadAux(raw json.RawMessage) error {
	m, err := p.read(raw)
	if err != nil {
		return err
	}
	p.doc = m.ID
	return nil
}

func (p *UUID) WriteAux() (json.RawMessage, error) {
	return json.Marshal(Meta{ID: p.doc})
}

// read decodes a Meta, assigning a fresh id when raw is absent, null or
// carries no id.
func (p *UUID) read(raw json.RawMessage) (*Meta, error) {
	m := &Meta{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, m); err != nil {
			return nil, fmt.Errorf("decode aux id: %w", err)
		}
	}
	if m.ID == uuid.Nil {
		m.ID = p.newID()
	}
	return m, nil
}

func write(aux any) (json.RawMessage, error) {
	m, ok := aux.(*Meta)
	if !ok || m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// IDOf returns the UUID stored in an aux value written by [UUID].
func IDOf(aux any) (uuid.UUID, bool) {
	m, ok := aux.(*Meta)
	if !ok || m == nil {
		return uuid.Nil, false
	}
	return m.ID, true
}
