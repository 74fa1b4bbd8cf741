package ports

import "context"

// ArchiveStore is the outbound contract for durable audit archival.
// Writes are keyed, last-write-wins, and never read back by the workflow;
// the store is a write-only compliance log.
type ArchiveStore interface {
	// Put writes body under key, overwriting any previous object.
	Put(ctx context.Context, key string, body []byte) error
}
