package mapper

import (
	"time"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/model"
)

type ShiftMapper struct{}

func NewShiftMapper() *ShiftMapper {
	return &ShiftMapper{}
}

func (m *ShiftMapper) ToEntity(s *model.Shift) *entity.Shift {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Shift{
		Id:           s.Id,
		SiteId:       s.SiteId,
		Date:         s.Date,
		PlannedStart: s.PlannedStart,
		PlannedEnd:   s.PlannedEnd,
		LunchMinutes: s.LunchMinutes,
		Status:       s.Status,
		StartedAt:    s.StartedAt,
		ClosedAt:     s.ClosedAt,
		ConfirmedBy:  s.ConfirmedBy,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ShiftMapper) ToModel(s *entity.Shift) *model.Shift {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Shift{
		Id:           s.Id,
		SiteId:       s.SiteId,
		Date:         s.Date,
		PlannedStart: s.PlannedStart,
		PlannedEnd:   s.PlannedEnd,
		LunchMinutes: s.LunchMinutes,
		Status:       s.Status,
		StartedAt:    s.StartedAt,
		ClosedAt:     s.ClosedAt,
		ConfirmedBy:  s.ConfirmedBy,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ShiftMapper) ToEntities(shifts []*model.Shift) []*entity.Shift {
	entities := make([]*entity.Shift, len(shifts))
	for i, s := range shifts {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
