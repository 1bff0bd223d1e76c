package service

import (
	"context"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/apperror"
	"shift-tracking-be/internal/repository/specification"
	"shift-tracking-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IAuditQueryService is the read model over the audit trail, exposed to
// managers and admins through the REST API.
type IAuditQueryService interface {
	ListByEntity(ctx context.Context, actor entity.Actor, entityType string, entityId uuid.UUID) ([]*entity.AuditEntry, error)
	ListRecent(ctx context.Context, actor entity.Actor, limit, offset int) ([]*entity.AuditEntry, error)
}

type auditQueryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAuditQueryService(uowFactory unitofwork.RepositoryFactory) IAuditQueryService {
	return &auditQueryService{
		uowFactory: uowFactory,
	}
}

func (s *auditQueryService) ListByEntity(ctx context.Context, actor entity.Actor, entityType string, entityId uuid.UUID) ([]*entity.AuditEntry, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("read audit trail")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AuditRepository().FindAll(ctx,
		specification.ByEntity{EntityType: entityType, EntityID: entityId},
		specification.OrderBy{Field: "changed_at", Desc: true},
	)
}

func (s *auditQueryService) ListRecent(ctx context.Context, actor entity.Actor, limit, offset int) ([]*entity.AuditEntry, error) {
	if !actor.CanManage() {
		return nil, apperror.Unauthorizedf("read audit trail")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AuditRepository().FindAll(ctx,
		specification.OrderBy{Field: "changed_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
}
