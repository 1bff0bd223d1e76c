package mapper

import (
	"encoding/json"
	"time"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	var data entity.FlowData
	if len(s.Data) > 0 {
		// A corrupt bag degrades to an empty one rather than failing a read.
		_ = json.Unmarshal(s.Data, &data)
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Session{
		Id:         s.Id,
		ChatUserId: s.ChatUserId,
		State:      s.State,
		Data:       data,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	raw, err := json.Marshal(s.Data)
	if err != nil {
		raw = []byte("{}")
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Session{
		Id:         s.Id,
		ChatUserId: s.ChatUserId,
		State:      s.State,
		Data:       datatypes.JSON(raw),
		Status:     "ACTIVE",
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

// MarshalData serializes a flow data bag for a partial column update.
func (m *SessionMapper) MarshalData(data entity.FlowData) datatypes.JSON {
	raw, err := json.Marshal(data)
	if err != nil {
		raw = []byte("{}")
	}
	return datatypes.JSON(raw)
}
