package blob

import (
	"context"
	"io"
)

// Store is the file collaborator: uploads go in under a caller-chosen
// key, display goes through public URL resolution.
type Store interface {
	// Put writes the content under key and returns the storage path.
	Put(ctx context.Context, key string, r io.Reader) (string, error)

	// URL resolves a storage path to a publicly servable URL.
	URL(path string) string
}
