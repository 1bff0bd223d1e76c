package entity

import (
	"time"

	"github.com/google/uuid"
)

// Site is a physical work location with a daily schedule. Shifts are
// instantiated from this schedule one per calendar date.
type Site struct {
	Id           uuid.UUID
	Name         string
	ManagerId    *uuid.UUID
	PlannedStart string // wall clock, HH:MM
	PlannedEnd   string // wall clock, HH:MM; may be before PlannedStart for overnight sites
	LunchMinutes int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Assignment links an employee to a site roster.
type Assignment struct {
	Id         uuid.UUID
	SiteId     uuid.UUID
	EmployeeId uuid.UUID
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
