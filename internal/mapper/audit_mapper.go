package mapper

import (
	"encoding/json"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/model"

	"gorm.io/datatypes"
)

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

func (m *AuditMapper) ToEntity(a *model.AuditLog) *entity.AuditEntry {
	if a == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(a.Metadata) > 0 {
		_ = json.Unmarshal(a.Metadata, &metadata)
	}

	return &entity.AuditEntry{
		Id:         a.Id,
		EntityType: a.EntityType,
		EntityId:   a.EntityId,
		Action:     a.Action,
		ChangedBy:  a.ChangedBy,
		Metadata:   metadata,
		ChangedAt:  a.ChangedAt,
	}
}

func (m *AuditMapper) ToModel(a *entity.AuditEntry) *model.AuditLog {
	if a == nil {
		return nil
	}

	var raw datatypes.JSON
	if a.Metadata != nil {
		if b, err := json.Marshal(a.Metadata); err == nil {
			raw = datatypes.JSON(b)
		}
	}

	return &model.AuditLog{
		Id:         a.Id,
		EntityType: a.EntityType,
		EntityId:   a.EntityId,
		Action:     a.Action,
		ChangedBy:  a.ChangedBy,
		Metadata:   raw,
		ChangedAt:  a.ChangedAt,
	}
}

func (m *AuditMapper) ToEntities(logs []*model.AuditLog) []*entity.AuditEntry {
	entities := make([]*entity.AuditEntry, len(logs))
	for i, a := range logs {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
