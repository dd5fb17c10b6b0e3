package domain

type EventType string

const (
	EventTypeCreated EventType = "CREATED"
	EventTypeUpdated EventType = "UPDATED"
	EventTypeDeleted EventType = "DELETED"
)

// Product is the caller-supplied snapshot of a product at the moment of a
// create/update/delete call. ID and Version are optional; nil means absent.
// The snapshot is transient input and is never persisted.
type Product struct {
	ID      *string `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Version *string `json:"version"`
}

// ProductEvent is the immutable record derived from a snapshot and published
// to the broker. ID is never empty once constructed.
type ProductEvent struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Version string    `json:"version"`
	Event   EventType `json:"event"`
}
