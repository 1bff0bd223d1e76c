package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is an append-only record of a mutation. The core only writes
// these; the read model is exposed to the REST API for managers and admins.
type AuditEntry struct {
	Id         uuid.UUID
	EntityType string
	EntityId   uuid.UUID
	Action     string
	ChangedBy  uuid.UUID
	Metadata   map[string]interface{}
	ChangedAt  time.Time
}
