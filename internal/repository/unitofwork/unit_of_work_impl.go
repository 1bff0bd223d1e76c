package unitofwork

import (
	"context"
	"fmt"

	"shift-tracking-be/internal/repository/contract"
	"shift-tracking-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) SessionRepository() contract.SessionRepository {
	return implementation.NewSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EmployeeRepository() contract.EmployeeRepository {
	return implementation.NewEmployeeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SiteRepository() contract.SiteRepository {
	return implementation.NewSiteRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AssignmentRepository() contract.AssignmentRepository {
	return implementation.NewAssignmentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ShiftRepository() contract.ShiftRepository {
	return implementation.NewShiftRepository(u.getDB())
}

func (u *UnitOfWorkImpl) WorkLogRepository() contract.WorkLogRepository {
	return implementation.NewWorkLogRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AuditRepository() contract.AuditRepository {
	return implementation.NewAuditRepository(u.getDB())
}
