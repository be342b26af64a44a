package storage

import "context"

// Store is the narrow blob-storage surface the processor needs: read an
// uploaded image, write a normalized image or result document, and mint a
// reference the model services can fetch the blob through.
type Store interface {
	Get(ctx context.Context, container string, name string) ([]byte, error)
	Put(ctx context.Context, container string, name string, data []byte) error
	// URL returns an externally usable reference for the blob, analogous to
	// a signed read URL.
	URL(container string, name string) (string, error)
	List(ctx context.Context, container string) ([]string, error)
}
