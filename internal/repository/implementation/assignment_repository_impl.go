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

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AssignmentMapper
}

func NewAssignmentRepository(db *gorm.DB) contract.AssignmentRepository {
	return &AssignmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewAssignmentMapper(),
	}
}

func (r *AssignmentRepositoryImpl) Create(ctx context.Context, assignment *entity.Assignment) error {
	m := r.mapper.ToModel(assignment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Duplicatef("assignment of employee %s to site %s", assignment.EmployeeId, assignment.SiteId)
		}
		return err
	}
	*assignment = *r.mapper.ToEntity(m)
	return nil
}

func (r *AssignmentRepositoryImpl) Update(ctx context.Context, assignment *entity.Assignment) error {
	m := r.mapper.ToModel(assignment)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*assignment = *r.mapper.ToEntity(m)
	return nil
}

func (r *AssignmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Assignment, error) {
	var m model.Assignment
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AssignmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Assignment, error) {
	var models []*model.Assignment
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AssignmentRepositoryImpl) FindActiveBySite(ctx context.Context, siteId uuid.UUID) ([]*entity.Assignment, error) {
	return r.FindAll(ctx, specification.BySite{SiteID: siteId}, specification.ActiveOnly{})
}
