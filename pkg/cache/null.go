package cache

import (
	"context"
	"time"

	"github.com/matzehuels/graphedit/pkg/observability"
)

// NullCache stores nothing. It backs --no-cache and stands in when the
// configured backend cannot be opened, so every lookup is a reported miss
// and rendering always runs.
type NullCache struct{}

func NewNullCache() *NullCache { return &NullCache{} }

// Get reports a miss for key.
func (*NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	observability.Cache().OnCacheMiss(ctx, keyType(key))
	return nil, false, nil
}

// Set discards data; no write is reported.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
