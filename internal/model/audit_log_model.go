package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityType string         `gorm:"type:varchar(32);not null;index:idx_audit_entity"`
	EntityId   uuid.UUID      `gorm:"type:uuid;not null;index:idx_audit_entity"`
	Action     string         `gorm:"type:varchar(16);not null"`
	ChangedBy  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Metadata   datatypes.JSON `gorm:"type:jsonb"`
	ChangedAt  time.Time      `gorm:"autoCreateTime;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
