package contract

import (
	"context"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/repository/specification"
)

// WorkLogRepository persists attendance rows. The (employee_id, shift_id)
// uniqueness invariant for shift-derived logs is enforced by the storage
// layer; overrides carry a null shift id and bypass it.
type WorkLogRepository interface {
	Create(ctx context.Context, log *entity.WorkLog) error
	Update(ctx context.Context, log *entity.WorkLog) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkLog, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
