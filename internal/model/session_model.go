package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Session struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatUserId int64          `gorm:"not null;uniqueIndex:idx_sessions_chat_user_active,where:status = 'ACTIVE'"`
	State      *string        `gorm:"type:varchar(64)"`
	Data       datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Status     string         `gorm:"type:varchar(16);not null;default:'ACTIVE'"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
