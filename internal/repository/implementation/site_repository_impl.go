package implementation

import (
	"context"
	"errors"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/mapper"
	"shift-tracking-be/internal/model"
	"shift-tracking-be/internal/repository/contract"
	"shift-tracking-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SiteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SiteMapper
}

func NewSiteRepository(db *gorm.DB) contract.SiteRepository {
	return &SiteRepositoryImpl{
		db:     db,
		mapper: mapper.NewSiteMapper(),
	}
}

func (r *SiteRepositoryImpl) Create(ctx context.Context, site *entity.Site) error {
	m := r.mapper.ToModel(site)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*site = *r.mapper.ToEntity(m)
	return nil
}

func (r *SiteRepositoryImpl) Update(ctx context.Context, site *entity.Site) error {
	m := r.mapper.ToModel(site)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*site = *r.mapper.ToEntity(m)
	return nil
}

func (r *SiteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Site, error) {
	var m model.Site
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SiteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Site, error) {
	var models []*model.Site
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SiteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Site{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
