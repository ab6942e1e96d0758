// Package payload provides [graph.AuxProvider] implementations.
//
// [UUID] gives the document and every node and edge a stable random id that
// survives save and load, so external tools can refer to entities across
// edits even though node indices are recycled.
//
// [Raw] keeps whatever aux values a document carries as raw JSON and writes
// them back untouched. Entities created during editing get no payload.
//
//	p := payload.NewUUID()
//	g := graph.New(graph.WithAux(p))
//	id := g.AddNode(geom.Pt(0.5, 0.3))
//	n, _ := g.Node(id)
//	payload.IDOf(n.Aux) // random UUID
package payload
