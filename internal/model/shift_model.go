package model

import (
	"time"

	"github.com/google/uuid"
)

type Shift struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SiteId       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_shifts_site_date"`
	Date         time.Time  `gorm:"type:date;not null;uniqueIndex:idx_shifts_site_date"`
	PlannedStart time.Time  `gorm:"not null"`
	PlannedEnd   time.Time  `gorm:"not null"`
	LunchMinutes int        `gorm:"not null;default:0"`
	Status       string     `gorm:"type:varchar(16);not null;default:'planned'"`
	StartedAt    *time.Time
	ClosedAt     *time.Time
	ConfirmedBy  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (Shift) TableName() string {
	return "site_shifts"
}
