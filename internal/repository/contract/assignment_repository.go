package contract

import (
	"context"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.Assignment) error
	Update(ctx context.Context, assignment *entity.Assignment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Assignment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Assignment, error)
	// FindActiveBySite returns the current roster for a site.
	FindActiveBySite(ctx context.Context, siteId uuid.UUID) ([]*entity.Assignment, error)
}
