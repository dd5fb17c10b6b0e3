package ports

import "context"

// Deduper records processed idempotency keys so replayed requests can be
// rejected before they reach the broker.
type Deduper interface {
	// Add records the key and reports whether it was newly added.
	Add(ctx context.Context, key string) (bool, error)
	// Remove forgets a key so the caller may retry after a downstream failure.
	Remove(ctx context.Context, key string) error
}
