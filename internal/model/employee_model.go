package model

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName   string    `gorm:"type:varchar(255);not null"`
	Role       string    `gorm:"type:varchar(16);not null;default:'EMPLOYEE'"`
	ChatUserId *int64    `gorm:"uniqueIndex"`
	RefCode    *string   `gorm:"type:varchar(32);uniqueIndex"`
	PinHash    *string   `gorm:"type:varchar(255)"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
