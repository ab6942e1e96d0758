package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// ArtifactOpts are the render options that distinguish artifacts of the
// same document. Format carries the engine as well, e.g. "graphviz-svg".
type ArtifactOpts struct {
	Format string
	Width  float64
	Height float64
	Scale  float64
}

// DocumentHash returns the hex SHA-256 of a serialized document. JSON
// whitespace is dropped first so a reformatted file keeps its artifacts;
// input that is not JSON is hashed as is.
func DocumentHash(doc []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, doc); err == nil {
		doc = buf.Bytes()
	}
	return digest(doc)
}

// ArtifactKey returns "artifact:<format>:<digest>", where the digest covers
// docHash and every field of opts.
func ArtifactKey(docHash string, opts ArtifactOpts) string {
	id := fmt.Sprintf("%s\x00%g\x00%g\x00%g", docHash, opts.Width, opts.Height, opts.Scale)
	return "artifact:" + opts.Format + ":" + digest([]byte(id))
}

// keyType returns the part of key before the first colon, used to label
// cache metrics.
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return "other"
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
