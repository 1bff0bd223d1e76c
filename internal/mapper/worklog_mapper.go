package mapper

import (
	"time"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/model"
)

type WorkLogMapper struct{}

func NewWorkLogMapper() *WorkLogMapper {
	return &WorkLogMapper{}
}

func (m *WorkLogMapper) ToEntity(w *model.WorkLog) *entity.WorkLog {
	if w == nil {
		return nil
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		t := w.UpdatedAt
		updatedAt = &t
	}

	return &entity.WorkLog{
		Id:           w.Id,
		EmployeeId:   w.EmployeeId,
		SiteId:       w.SiteId,
		ShiftId:      w.ShiftId,
		Date:         w.Date,
		ActualStart:  w.ActualStart,
		ActualEnd:    w.ActualEnd,
		LunchMinutes: w.LunchMinutes,
		IsOverride:   w.IsOverride,
		CreatedBy:    w.CreatedBy,
		UpdatedBy:    w.UpdatedBy,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *WorkLogMapper) ToModel(w *entity.WorkLog) *model.WorkLog {
	if w == nil {
		return nil
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	return &model.WorkLog{
		Id:           w.Id,
		EmployeeId:   w.EmployeeId,
		SiteId:       w.SiteId,
		ShiftId:      w.ShiftId,
		Date:         w.Date,
		ActualStart:  w.ActualStart,
		ActualEnd:    w.ActualEnd,
		LunchMinutes: w.LunchMinutes,
		IsOverride:   w.IsOverride,
		CreatedBy:    w.CreatedBy,
		UpdatedBy:    w.UpdatedBy,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *WorkLogMapper) ToEntities(logs []*model.WorkLog) []*entity.WorkLog {
	entities := make([]*entity.WorkLog, len(logs))
	for i, w := range logs {
		entities[i] = m.ToEntity(w)
	}
	return entities
}
