package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/graph"
	graphio "github.com/matzehuels/graphedit/pkg/io"
	"github.com/matzehuels/graphedit/pkg/observability"
)

// ErrNotFound is returned when a named document does not exist.
var ErrNotFound = errors.New("document not found")

// Store persists serialized graph documents by name.
type Store interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
	// List returns document names in ascending order.
	List(ctx context.Context) ([]string, error)
	Close() error
}

// Option configures [Open].
type Option func(*config)

type config struct {
	logger *log.Logger
}

// WithLogger sets the logger stores report debug messages to.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Open returns the store located by rawURL. Plain paths open a [FileStore].
// Every store returned validates document names and reports through the
// storage hooks.
func Open(ctx context.Context, rawURL string, opts ...Option) (Store, error) {
	cfg := config{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := apperrors.ValidateStoreURL(rawURL); err != nil {
		return nil, err
	}

	var (
		s       Store
		backend string
		err     error
	)
	switch {
	case strings.HasPrefix(rawURL, "redis://"), strings.HasPrefix(rawURL, "rediss://"):
		backend = "redis"
		s, err = NewRedisStore(ctx, rawURL)
	case strings.HasPrefix(rawURL, "mongodb://"), strings.HasPrefix(rawURL, "mongodb+srv://"):
		backend = "mongo"
		s, err = NewMongoStore(ctx, rawURL)
	default:
		backend = "file"
		s, err = NewFileStore(filePath(rawURL))
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorage, err, "cannot open %s store", backend)
	}

	cfg.logger.Debug("opened store", "backend", backend, "url", redact(rawURL))
	return &instrumented{Store: s, backend: backend, logger: cfg.logger}, nil
}

func filePath(rawURL string) string {
	if p, ok := strings.CutPrefix(rawURL, "file://"); ok {
		return p
	}
	return rawURL
}

// redact hides the password of URLs logged.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	return u.Redacted()
}

// LoadGraph loads and decodes the document called name.
func LoadGraph(ctx context.Context, s Store, name string, opts ...graph.Option) (*graph.Graph, error) {
	data, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return graphio.ReadJSON(bytes.NewReader(data), opts...)
}

// SaveGraph encodes g and stores it as name.
func SaveGraph(ctx context.Context, s Store, name string, g *graph.Graph) error {
	data, err := graphio.Marshal(g)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "cannot encode %s", name)
	}
	return s.Save(ctx, name, data)
}

// instrumented validates names and reports operations to the storage hooks.
type instrumented struct {
	Store
	backend string
	logger  *log.Logger
}

func (s *instrumented) Load(ctx context.Context, name string) ([]byte, error) {
	if err := apperrors.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	start := time.Now()
	data, err := s.Store.Load(ctx, name)
	observability.Storage().OnLoad(ctx, s.backend, name, len(data), time.Since(start), err)
	s.logger.Debug("load", "backend", s.backend, "name", name, "bytes", len(data), "err", err)
	return data, classify(err, name)
}

func (s *instrumented) Save(ctx context.Context, name string, data []byte) error {
	if err := apperrors.ValidateDocumentName(name); err != nil {
		return err
	}
	start := time.Now()
	err := s.Store.Save(ctx, name, data)
	observability.Storage().OnSave(ctx, s.backend, name, len(data), time.Since(start), err)
	s.logger.Debug("save", "backend", s.backend, "name", name, "bytes", len(data), "err", err)
	return classify(err, name)
}

func (s *instrumented) Delete(ctx context.Context, name string) error {
	if err := apperrors.ValidateDocumentName(name); err != nil {
		return err
	}
	err := s.Store.Delete(ctx, name)
	observability.Storage().OnDelete(ctx, s.backend, name, err)
	s.logger.Debug("delete", "backend", s.backend, "name", name, "err", err)
	return classify(err, name)
}

func (s *instrumented) List(ctx context.Context) ([]string, error) {
	names, err := s.Store.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorage, err, "cannot list documents")
	}
	return names, nil
}

// classify maps backend errors to coded errors. Missing documents keep
// matching ErrNotFound.
func classify(err error, name string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return apperrors.Wrap(apperrors.ErrCodeNotFound, err, "document %q not found", name)
	default:
		return apperrors.Wrap(apperrors.ErrCodeStorage, err, "storage failure for %q", name)
	}
}

// notFound wraps ErrNotFound with the document name.
func notFound(name string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}
