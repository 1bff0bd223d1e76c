package service

import (
	"context"
	"encoding/json"
	"time"

	"shift-tracking-be/internal/constant"
	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/logger"
	"shift-tracking-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IAuditService records every mutation of the tracked entities. Durability
// is a configuration choice, not an assumed guarantee: in strict mode the
// entry is written through the caller's unit of work, so it joins the
// caller's transaction and a failed audit write rolls the mutation back.
// In best-effort mode the entry is published to the in-process bus and the
// mutation never waits on it.
type IAuditService interface {
	Record(ctx context.Context, uow unitofwork.UnitOfWork, entry *entity.AuditEntry) error
}

type auditService struct {
	strict bool
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewAuditService(strict bool, pubSub *gochannel.GoChannel, logger logger.ILogger) IAuditService {
	return &auditService{
		strict: strict,
		pubSub: pubSub,
		logger: logger,
	}
}

func (s *auditService) Record(ctx context.Context, uow unitofwork.UnitOfWork, entry *entity.AuditEntry) error {
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	if entry.ChangedAt.IsZero() {
		entry.ChangedAt = time.Now()
	}

	if s.strict {
		return uow.AuditRepository().Log(ctx, entry)
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		s.logger.Error("audit", "failed to marshal audit entry", map[string]interface{}{
			"error":      err.Error(),
			"entityType": entry.EntityType,
		})
		return nil
	}

	msg := message.NewMessage(entry.Id.String(), payload)
	if err := s.pubSub.Publish(constant.AuditTopicName, msg); err != nil {
		// Fire and forget: the triggering mutation is never rolled back
		// because the trail hiccuped.
		s.logger.Warn("audit", "failed to publish audit entry", map[string]interface{}{
			"error":      err.Error(),
			"entityType": entry.EntityType,
			"entityId":   entry.EntityId.String(),
		})
	}
	return nil
}
