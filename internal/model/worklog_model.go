package model

import (
	"time"

	"github.com/google/uuid"
)

// The unique index on (employee_id, shift_id) guards against duplicate
// clock-ins for shift-derived logs. Overrides carry a NULL shift_id, so
// Postgres lets any number of them through the same index.
type WorkLog struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeId   uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_work_logs_employee_shift"`
	SiteId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShiftId      *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_work_logs_employee_shift"`
	Date         time.Time  `gorm:"type:date;not null;index"`
	ActualStart  time.Time  `gorm:"not null"`
	ActualEnd    *time.Time
	LunchMinutes int        `gorm:"not null;default:0"`
	IsOverride   bool       `gorm:"not null;default:false"`
	CreatedBy    uuid.UUID  `gorm:"type:uuid;not null"`
	UpdatedBy    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (WorkLog) TableName() string {
	return "work_logs"
}
