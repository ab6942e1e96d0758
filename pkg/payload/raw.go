package payload

import (
	"encoding/json"

	"github.com/matzehuels/graphedit/pkg/graph"
)

// Raw is an aux provider that round-trips aux values verbatim.
type Raw struct {
	doc json.RawMessage
}

var _ graph.AuxProvider = (*Raw)(nil)

// NewRaw returns a provider with no document payload.
func NewRaw() *Raw { return &Raw{} }

// Document returns the document-level aux value as read.
func (p *Raw) Document() json.RawMessage { return p.doc }

func (p *Raw) NewNode(*graph.Node) any { return nil }
func (p *Raw) NewEdge(*graph.Edge) any { return nil }

func (p *Raw) ReadNodeAux(_ *graph.Node, raw json.RawMessage) (any, error) { return clone(raw), nil }
func (p *Raw) ReadEdgeAux(_ *graph.Edge, raw json.RawMessage) (any, error) { return clone(raw), nil }

func (p *Raw) WriteNodeAux(aux any) (json.RawMessage, error) { return rawOf(aux), nil }
func (p *Raw) WriteEdgeAux(aux any) (json.RawMessage, error) { return rawOf(aux), nil }

func (p *Raw) ReadAux(raw json.RawMessage) error {
	p.doc = clone(raw)
	return nil
}

func (p *Raw) WriteAux() (json.RawMessage, error) { return p.doc, nil }

func clone(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}

func rawOf(aux any) json.RawMessage {
	raw, _ := aux.(json.RawMessage)
	return raw
}
