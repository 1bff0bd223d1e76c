package entity

import (
	"time"

	"github.com/google/uuid"
)

// Shift status advances planned -> started -> closed, never backward and
// never skipping a step.
const (
	ShiftPlanned = "planned"
	ShiftStarted = "started"
	ShiftClosed  = "closed"
)

// Shift is one site's work period for one calendar date. Unique per
// (SiteId, Date); the uniqueness is enforced by the storage layer.
type Shift struct {
	Id           uuid.UUID
	SiteId       uuid.UUID
	Date         time.Time
	PlannedStart time.Time
	PlannedEnd   time.Time
	LunchMinutes int
	Status       string
	StartedAt    *time.Time
	ClosedAt     *time.Time
	ConfirmedBy  *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
