package contract

import (
	"context"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/repository/specification"
)

// ShiftRepository persists shift rows. The (site_id, date) uniqueness
// invariant is enforced by the storage layer; Create surfaces a violation
// as a duplicate error.
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	Update(ctx context.Context, shift *entity.Shift) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Shift, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Shift, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
