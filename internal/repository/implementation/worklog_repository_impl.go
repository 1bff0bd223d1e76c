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

type WorkLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkLogMapper
}

func NewWorkLogRepository(db *gorm.DB) contract.WorkLogRepository {
	return &WorkLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkLogMapper(),
	}
}

func (r *WorkLogRepositoryImpl) Create(ctx context.Context, log *entity.WorkLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Duplicatef("work log for employee %s", log.EmployeeId)
		}
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *WorkLogRepositoryImpl) Update(ctx context.Context, log *entity.WorkLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *WorkLogRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkLog, error) {
	var m model.WorkLog
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WorkLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkLog, error) {
	var models []*model.WorkLog
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *WorkLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.WorkLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
