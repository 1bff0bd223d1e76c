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

type EmployeeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EmployeeMapper
}

func NewEmployeeRepository(db *gorm.DB) contract.EmployeeRepository {
	return &EmployeeRepositoryImpl{
		db:     db,
		mapper: mapper.NewEmployeeMapper(),
	}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EmployeeRepositoryImpl) Create(ctx context.Context, employee *entity.Employee) error {
	m := r.mapper.ToModel(employee)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Duplicatef("employee %s", employee.Id)
		}
		return err
	}
	*employee = *r.mapper.ToEntity(m)
	return nil
}

func (r *EmployeeRepositoryImpl) Update(ctx context.Context, employee *entity.Employee) error {
	m := r.mapper.ToModel(employee)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*employee = *r.mapper.ToEntity(m)
	return nil
}

func (r *EmployeeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Employee, error) {
	var m model.Employee
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EmployeeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Employee, error) {
	var models []*model.Employee
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *EmployeeRepositoryImpl) FindByChatUser(ctx context.Context, chatUserId int64) (*entity.Employee, error) {
	var m model.Employee
	err := r.db.WithContext(ctx).Where("chat_user_id = ?", chatUserId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EmployeeRepositoryImpl) FindByRefCode(ctx context.Context, refCode string) (*entity.Employee, error) {
	var m model.Employee
	err := r.db.WithContext(ctx).Where("ref_code = ?", refCode).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EmployeeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Employee{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
