package slot

import "context"

// Repository is the durable storage collaborator: named slots holding opaque
// serialized blobs. The catalog is one slot, written whole on every mutation.
type Repository interface {
	// Read returns the stored value for key, or domain.ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write upserts the value for key.
	Write(ctx context.Context, key string, value []byte) error
}
