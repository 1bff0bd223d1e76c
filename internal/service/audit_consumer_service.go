package service

import (
	"context"
	"encoding/json"
	"time"

	"shift-tracking-be/internal/entity"
	"shift-tracking-be/internal/pkg/logger"
	"shift-tracking-be/internal/repository/unitofwork"
	"shift-tracking-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// INatsPublisher is the outbound edge of the audit pipeline. Kept as an
// interface so the consumer runs without a broker in development.
type INatsPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IAuditConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumerService drains the in-process audit topic: persists each
// entry and forwards it to NATS. Only best-effort mode routes entries
// through here; strict mode writes rows inside the mutating transaction.
type auditConsumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	natsPub    INatsPublisher
	logger     logger.ILogger
}

func NewAuditConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	natsPub INatsPublisher,
	logger logger.ILogger,
) IAuditConsumerService {
	return &auditConsumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		natsPub:    natsPub,
		logger:     logger,
	}
}

func (cs *auditConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *auditConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var entry entity.AuditEntry
	if err := json.Unmarshal(msg.Payload, &entry); err != nil {
		cs.logger.Error("audit-consumer", "failed to unmarshal audit entry", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack malformed messages to prevent infinite retry.
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AuditRepository().Log(ctx, &entry); err != nil {
		cs.logger.Error("audit-consumer", "failed to persist audit entry", map[string]interface{}{
			"error":    err.Error(),
			"entityId": entry.EntityId.String(),
		})
		msg.Nack()
		return
	}

	if cs.natsPub != nil {
		event := events.BaseEvent{
			Type: entry.EntityType + "_" + entry.Action,
			Data: map[string]interface{}{
				"id":         entry.Id.String(),
				"entityType": entry.EntityType,
				"entityId":   entry.EntityId.String(),
				"action":     entry.Action,
				"changedBy":  entry.ChangedBy.String(),
				"metadata":   entry.Metadata,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.natsPub.Publish(ctx, event); err != nil {
			// The row is already durable; broker delivery stays best effort.
			cs.logger.Warn("audit-consumer", "failed to forward audit entry to NATS", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
