package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByShift filters work logs by their owning shift
type ByShift struct {
	ShiftID uuid.UUID
}

func (s ByShift) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("shift_id = ?", s.ShiftID)
}

// ByEmployee filters work logs or assignments by employee
type ByEmployee struct {
	EmployeeID uuid.UUID
}

func (s ByEmployee) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("employee_id = ?", s.EmployeeID)
}

// StillOpen keeps work logs whose actual_end has not been stamped yet
type StillOpen struct{}

func (s StillOpen) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("actual_end IS NULL")
}

// OverridesOnly keeps standalone manual corrections
type OverridesOnly struct{}

func (s OverridesOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_override = ?", true)
}

// ByEntity filters audit entries by the entity they describe
type ByEntity struct {
	EntityType string
	EntityID   uuid.UUID
}

func (s ByEntity) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("entity_type = ? AND entity_id = ?", s.EntityType, s.EntityID)
}
