package contract

import (
	"context"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/repository/specification"
)

type SiteRepository interface {
	Create(ctx context.Context, site *entity.Site) error
	Update(ctx context.Context, site *entity.Site) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Site, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Site, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
