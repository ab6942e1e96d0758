package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/graph"
	graphio "github.com/matzehuels/graphedit/pkg/io"
	"github.com/matzehuels/graphedit/pkg/payload"
	"github.com/matzehuels/graphedit/pkg/storage"
)

// document is a graph document named on the command line: a JSON file, or
// a name in the document store.
type document struct {
	path  string // file documents
	name  string // store documents
	store storage.Store
	ids   bool // attach UUIDs to entities
}

// isFileRef reports whether a document argument names a file rather than a
// stored document.
func isFileRef(arg string) bool {
	return strings.HasSuffix(arg, ".json") || strings.ContainsAny(arg, `/\`)
}

// openDocument resolves a document argument, opening the store if needed.
// Callers must close the returned document.
func (c *CLI) openDocument(ctx context.Context, arg string) (*document, error) {
	ids := c.config().Editor.IDs
	if isFileRef(arg) {
		return &document{path: arg, ids: ids}, nil
	}
	if err := apperrors.ValidateDocumentName(arg); err != nil {
		return nil, err
	}
	s, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	return &document{name: arg, store: s, ids: ids}, nil
}

func (d *document) String() string {
	if d.path != "" {
		return d.path
	}
	return d.name
}

// base returns the document name without directory or extension, used to
// derive output file names.
func (d *document) base() string {
	if d.path == "" {
		return d.name
	}
	return strings.TrimSuffix(filepath.Base(d.path), filepath.Ext(d.path))
}

// auxOption picks the payload provider: stable UUIDs when requested,
// otherwise whatever the document carries is kept verbatim.
func (d *document) auxOption() graph.Option {
	if d.ids {
		return graph.WithAux(payload.NewUUID())
	}
	return graph.WithAux(payload.NewRaw())
}

// load reads and decodes the document.
func (d *document) load(ctx context.Context, opts ...graph.Option) (*graph.Graph, error) {
	opts = append([]graph.Option{d.auxOption()}, opts...)
	if d.store != nil {
		return storage.LoadGraph(ctx, d.store, d.name, opts...)
	}
	return graphio.ImportJSON(d.path, opts...)
}

// exists reports whether the document has been saved before.
func (d *document) exists(ctx context.Context) (bool, error) {
	if d.store == nil {
		_, err := os.Stat(d.path)
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return err == nil, err
	}
	_, err := d.store.Load(ctx, d.name)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// save encodes and writes g.
func (d *document) save(ctx context.Context, g *graph.Graph) error {
	if d.store != nil {
		return storage.SaveGraph(ctx, d.store, d.name, g)
	}
	data, err := graphio.Marshal(g)
	if err != nil {
		return err
	}
	return d.write(ctx, data)
}

// write stores an already encoded document.
func (d *document) write(ctx context.Context, data []byte) error {
	if d.store != nil {
		return d.store.Save(ctx, d.name, data)
	}
	if dir := filepath.Dir(d.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(d.path, data, 0o644)
}

func (d *document) close() error {
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}
