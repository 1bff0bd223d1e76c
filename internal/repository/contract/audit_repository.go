package contract

import (
	"context"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/repository/specification"
)

// AuditRepository is the append-only sink. Entries are never updated or
// deleted; the core writes them and the REST read model lists them.
type AuditRepository interface {
	Log(ctx context.Context, entry *entity.AuditEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditEntry, error)
}
