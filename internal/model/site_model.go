package model

import (
	"time"

	"github.com/google/uuid"
)

type Site struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string     `gorm:"type:varchar(255);not null"`
	ManagerId    *uuid.UUID `gorm:"type:uuid;index"`
	PlannedStart string     `gorm:"type:varchar(8);not null"`
	PlannedEnd   string     `gorm:"type:varchar(8);not null"`
	LunchMinutes int        `gorm:"not null;default:0"`
	IsActive     bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (Site) TableName() string {
	return "work_sites"
}

type Assignment struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SiteId     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_assignments_site_employee"`
	EmployeeId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_assignments_site_employee"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Assignment) TableName() string {
	return "assignments"
}
