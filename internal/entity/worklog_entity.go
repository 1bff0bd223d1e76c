package entity

import (
	"time"

	"github.com/google/uuid"
)

// WorkLog is one worker's attendance record: either derived from a shift's
// lifecycle (ShiftId set, at most one per employee and shift) or a
// standalone manual correction (IsOverride, ShiftId nil, duplicates allowed
// since each override is a distinct correction event).
type WorkLog struct {
	Id           uuid.UUID
	EmployeeId   uuid.UUID
	SiteId       uuid.UUID
	ShiftId      *uuid.UUID
	Date         time.Time
	ActualStart  time.Time
	ActualEnd    *time.Time // nil while the worker is still clocked in
	LunchMinutes int
	IsOverride   bool
	CreatedBy    uuid.UUID
	UpdatedBy    *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
