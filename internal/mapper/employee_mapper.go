package mapper

import (
	"time"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/model"
)

type EmployeeMapper struct{}

func NewEmployeeMapper() *EmployeeMapper {
	return &EmployeeMapper{}
}

func (m *EmployeeMapper) ToEntity(e *model.Employee) *entity.Employee {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Employee{
		Id:         e.Id,
		FullName:   e.FullName,
		Role:       e.Role,
		ChatUserId: e.ChatUserId,
		RefCode:    e.RefCode,
		PinHash:    e.PinHash,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *EmployeeMapper) ToModel(e *entity.Employee) *model.Employee {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Employee{
		Id:         e.Id,
		FullName:   e.FullName,
		Role:       e.Role,
		ChatUserId: e.ChatUserId,
		RefCode:    e.RefCode,
		PinHash:    e.PinHash,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *EmployeeMapper) ToEntities(employees []*model.Employee) []*entity.Employee {
	entities := make([]*entity.Employee, len(employees))
	for i, e := range employees {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
