package kernel

import "github.com/google/uuid"

// UUID identifies a domain event. Entities use database-assigned IDs; events
// are created in memory before any row exists, so they carry a random UUID
// that listeners and realtime subscribers can deduplicate on.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

func (u UUID) String() string {
	return u.id.String()
}
