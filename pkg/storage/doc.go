// Package storage keeps named graph documents.
//
// # Overview
//
// A [Store] maps document names to serialized documents (the JSON written
// by [io.WriteJSON]). [Open] picks a backend from a URL:
//
//   - a plain path or file:///dir: one JSON file per document ([FileStore])
//   - redis://host:port/db: one Redis string per document ([RedisStore])
//   - mongodb://host/db: one MongoDB document per graph ([MongoStore])
//
// Names are checked with [errors.ValidateDocumentName] before any backend
// sees them, so they are safe as file names and keys.
//
//	s, err := storage.Open(ctx, "redis://localhost:6379/0")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	g, err := storage.LoadGraph(ctx, s, "dfa")
//
// # Errors
//
// Loading or deleting a missing document returns an error matching
// [ErrNotFound]. Network failures of the Redis and MongoDB backends are
// retried with backoff before they are reported as STORAGE_ERROR.
//
// # Observability
//
// Every load, save and delete is reported through [observability.Storage].
//
// [io.WriteJSON]: github.com/matzehuels/graphedit/pkg/io
// [errors.ValidateDocumentName]: github.com/matzehuels/graphedit/pkg/errors
// [observability.Storage]: github.com/matzehuels/graphedit/pkg/observability
package storage
