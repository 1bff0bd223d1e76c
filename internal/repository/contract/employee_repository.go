package contract

import (
	"context"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/repository/specification"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	Update(ctx context.Context, employee *entity.Employee) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Employee, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Employee, error)
	FindByChatUser(ctx context.Context, chatUserId int64) (*entity.Employee, error)
	FindByRefCode(ctx context.Context, refCode string) (*entity.Employee, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
