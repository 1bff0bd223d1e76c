package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateShiftRequest struct {
	SiteId uuid.UUID `json:"site_id" validate:"required"`
	Date   string    `json:"date" validate:"required,datetime=2006-01-02"`
}

type ConfirmShiftStartRequest struct {
	At                *time.Time  `json:"at"`
	AbsentEmployeeIds []uuid.UUID `json:"absent_employee_ids"`
}

type ConfirmShiftEndRequest struct {
	At *time.Time `json:"at"`
}

type AddShiftEmployeeRequest struct {
	EmployeeId uuid.UUID  `json:"employee_id" validate:"required"`
	At         *time.Time `json:"at"`
}

type ShiftResponse struct {
	Id           uuid.UUID  `json:"id"`
	SiteId       uuid.UUID  `json:"site_id"`
	Date         string     `json:"date"`
	PlannedStart time.Time  `json:"planned_start"`
	PlannedEnd   time.Time  `json:"planned_end"`
	LunchMinutes int        `json:"lunch_minutes"`
	Status       string     `json:"status"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	ConfirmedBy  *uuid.UUID `json:"confirmed_by,omitempty"`
}

type ShiftDetailsResponse struct {
	Shift    ShiftResponse     `json:"shift"`
	WorkLogs []WorkLogResponse `json:"work_logs"`
}
