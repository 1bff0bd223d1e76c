package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateOverrideRequest struct {
	EmployeeId   uuid.UUID `json:"employee_id" validate:"required"`
	SiteId       uuid.UUID `json:"site_id" validate:"required"`
	Date         string    `json:"date" validate:"required,datetime=2006-01-02"`
	ActualStart  string    `json:"actual_start" validate:"required"`
	ActualEnd    string    `json:"actual_end" validate:"required"`
	LunchMinutes int       `json:"lunch_minutes" validate:"gte=0"`
}

type UpdateWorkLogRequest struct {
	ActualStart  *time.Time `json:"actual_start"`
	ActualEnd    *time.Time `json:"actual_end"`
	LunchMinutes *int       `json:"lunch_minutes" validate:"omitempty,gte=0"`
}

type WorkLogResponse struct {
	Id           uuid.UUID  `json:"id"`
	EmployeeId   uuid.UUID  `json:"employee_id"`
	SiteId       uuid.UUID  `json:"site_id"`
	ShiftId      *uuid.UUID `json:"shift_id,omitempty"`
	Date         string     `json:"date"`
	ActualStart  time.Time  `json:"actual_start"`
	ActualEnd    *time.Time `json:"actual_end,omitempty"`
	LunchMinutes int        `json:"lunch_minutes"`
	IsOverride   bool       `json:"is_override"`
	WorkedHours  *float64   `json:"worked_hours,omitempty"`
}
