package implementation

import (
	"context"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/mapper"
	"shift-tracking-be/internal/model"
	"shift-tracking-be/internal/repository/contract"
	"shift-tracking-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AuditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AuditMapper
}

func NewAuditRepository(db *gorm.DB) contract.AuditRepository {
	return &AuditRepositoryImpl{
		db:     db,
		mapper: mapper.NewAuditMapper(),
	}
}

func (r *AuditRepositoryImpl) Log(ctx context.Context, entry *entity.AuditEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *AuditRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditEntry, error) {
	var models []*model.AuditLog
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
