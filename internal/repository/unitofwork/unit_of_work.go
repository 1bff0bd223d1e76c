package unitofwork

import (
	"context"

	"shift-tracking-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one logical operation. Between
// Begin and Commit/Rollback every repository it hands out shares one
// database transaction; outside a transaction they run directly against
// the pool. Multi-row shift operations (confirm start/end) must run inside
// a transaction so a partial failure never leaves the shift status
// inconsistent with its work logs.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	EmployeeRepository() contract.EmployeeRepository
	SiteRepository() contract.SiteRepository
	AssignmentRepository() contract.AssignmentRepository
	ShiftRepository() contract.ShiftRepository
	WorkLogRepository() contract.WorkLogRepository
	AuditRepository() contract.AuditRepository
}
