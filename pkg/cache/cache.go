// Package cache stores rendered artifacts keyed by the content they were
// rendered from.
//
// Rendering a document to SVG, PNG or PDF is deterministic in the document
// JSON and the render options, so the CLI and the preview server look results
// up by [ArtifactKey] before drawing. Three backends are provided:
//
//   - [FileCache] keeps entries as JSON files under a directory (CLI default)
//   - [RedisCache] keeps entries in Redis with native expiry (serve)
//   - [NullCache] never stores anything (--no-cache)
//
// Every backend reports hits, misses and writes through
// [observability.Cache].
//
// [observability.Cache]: github.com/matzehuels/graphedit/pkg/observability
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
