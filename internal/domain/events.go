package domain

import (
	"github.com/google/uuid"
)

// NewProductEvent derives the event for one create/update/delete operation.
// The event type comes from the operation alone, never from snapshot content.
// A snapshot without an ID gets a freshly generated one; the version advances
// by exactly one step from the snapshot's version.
func NewProductEvent(p Product, eventType EventType) (ProductEvent, error) {
	version, err := NextVersion(p.Version)
	if err != nil {
		return ProductEvent{}, err
	}
	id := uuid.NewString()
	if p.ID != nil {
		id = *p.ID
	}
	return ProductEvent{
		ID:      id,
		Name:    p.Name,
		Type:    p.Type,
		Version: version,
		Event:   eventType,
	}, nil
}
