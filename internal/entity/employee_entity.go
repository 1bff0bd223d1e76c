package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

type Employee struct {
	Id         uuid.UUID
	FullName   string
	Role       string
	ChatUserId *int64
	RefCode    *string
	PinHash    *string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Actor identifies who is performing an operation. Capability checks happen
// once at the entry of each use case.
type Actor struct {
	EmployeeId uuid.UUID
	Role       string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManage reports whether the actor may run manager-level operations
// (shift lifecycle, site administration, work-log corrections).
func (a Actor) CanManage() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}
