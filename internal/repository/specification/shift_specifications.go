package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySite filters shifts, work logs or assignments by their site
type BySite struct {
	SiteID uuid.UUID
}

func (s BySite) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("site_id = ?", s.SiteID)
}

// ByManager filters sites by the owning manager
type ByManager struct {
	ManagerID uuid.UUID
}

func (s ByManager) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("manager_id = ?", s.ManagerID)
}

// ByDate filters by exact calendar date
type ByDate struct {
	Date time.Time
}

func (s ByDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date = ?", s.Date.Format("2006-01-02"))
}

// ByDateRange filters by an inclusive calendar date range
type ByDateRange struct {
	From time.Time
	To   time.Time
}

func (s ByDateRange) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("date BETWEEN ? AND ?", s.From.Format("2006-01-02"), s.To.Format("2006-01-02"))
}

// ByStatus filters shifts by lifecycle status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
