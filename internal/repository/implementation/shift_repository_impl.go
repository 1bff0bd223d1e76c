package implementation

import (
	"context"
	"errors"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/mapper"
	"shift-tracking-be/internal/model"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/repository/contract"
	"shift-tracking-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ShiftRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ShiftMapper
}

func NewShiftRepository(db *gorm.DB) contract.ShiftRepository {
	return &ShiftRepositoryImpl{
		db:     db,
		mapper: mapper.NewShiftMapper(),
	}
}

func (r *ShiftRepositoryImpl) Create(ctx context.Context, shift *entity.Shift) error {
	m := r.mapper.ToModel(shift)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Duplicatef("shift for site %s on %s", shift.SiteId, shift.Date.Format("2006-01-02"))
		}
		return err
	}
	*shift = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShiftRepositoryImpl) Update(ctx context.Context, shift *entity.Shift) error {
	m := r.mapper.ToModel(shift)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*shift = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShiftRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Shift, error) {
	var m model.Shift
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ShiftRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Shift, error) {
	var models []*model.Shift
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ShiftRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Shift{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
