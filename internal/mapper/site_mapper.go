package mapper

import (
	"time"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/model"
)

type SiteMapper struct{}

func NewSiteMapper() *SiteMapper {
	return &SiteMapper{}
}

func (m *SiteMapper) ToEntity(s *model.Site) *entity.Site {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Site{
		Id:           s.Id,
		Name:         s.Name,
		ManagerId:    s.ManagerId,
		PlannedStart: s.PlannedStart,
		PlannedEnd:   s.PlannedEnd,
		LunchMinutes: s.LunchMinutes,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *SiteMapper) ToModel(s *entity.Site) *model.Site {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Site{
		Id:           s.Id,
		Name:         s.Name,
		ManagerId:    s.ManagerId,
		PlannedStart: s.PlannedStart,
		PlannedEnd:   s.PlannedEnd,
		LunchMinutes: s.LunchMinutes,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *SiteMapper) ToEntities(sites []*model.Site) []*entity.Site {
	entities := make([]*entity.Site, len(sites))
	for i, s := range sites {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

type AssignmentMapper struct{}

func NewAssignmentMapper() *AssignmentMapper {
	return &AssignmentMapper{}
}

func (m *AssignmentMapper) ToEntity(a *model.Assignment) *entity.Assignment {
	if a == nil {
		return nil
	}

	var updatedAt *time.Time
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		updatedAt = &t
	}

	return &entity.Assignment{
		Id:         a.Id,
		SiteId:     a.SiteId,
		EmployeeId: a.EmployeeId,
		IsActive:   a.IsActive,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *AssignmentMapper) ToModel(a *entity.Assignment) *model.Assignment {
	if a == nil {
		return nil
	}

	var updatedAt time.Time
	if a.UpdatedAt != nil {
		updatedAt = *a.UpdatedAt
	}

	return &model.Assignment{
		Id:         a.Id,
		SiteId:     a.SiteId,
		EmployeeId: a.EmployeeId,
		IsActive:   a.IsActive,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *AssignmentMapper) ToEntities(assignments []*model.Assignment) []*entity.Assignment {
	entities := make([]*entity.Assignment, len(assignments))
	for i, a := range assignments {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
