package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"licensewatch-admin/internal/pkg/logger"
	"licensewatch-admin/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const auditModule = "AUDIT"

// AuditSubscriber is satisfied by events.ChannelBus.
type AuditSubscriber interface {
	Subscribe(ctx context.Context, eventType string) (<-chan *message.Message, error)
}

type IAuditConsumerService interface {
	// Consume subscribes to every event type and returns once subscribed.
	// Messages are processed in the background until ctx is cancelled or the
	// bus is closed.
	Consume(ctx context.Context) error
	// Wait blocks until every background reader has exited.
	Wait()
}

type auditConsumerService struct {
	subscriber AuditSubscriber
	eventTypes []string
	logger     logger.ILogger
	wg         sync.WaitGroup
}

func NewAuditConsumerService(subscriber AuditSubscriber, eventTypes []string, logger logger.ILogger) IAuditConsumerService {
	return &auditConsumerService{
		subscriber: subscriber,
		eventTypes: eventTypes,
		logger:     logger,
	}
}

func (cs *auditConsumerService) Consume(ctx context.Context) error {
	for _, eventType := range cs.eventTypes {
		messages, err := cs.subscriber.Subscribe(ctx, eventType)
		if err != nil {
			return err
		}

		cs.wg.Add(1)
		go func() {
			defer cs.wg.Done()
			for msg := range messages {
				cs.processMessage(msg)
			}
		}()
	}
	return nil
}

func (cs *auditConsumerService) Wait() {
	cs.wg.Wait()
}

func (cs *auditConsumerService) processMessage(msg *message.Message) {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error(auditModule, "Failed to decode audit event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // undecodable, retrying will not help
		return
	}

	cs.logger.Info(auditModule, "Audit event", map[string]interface{}{
		"event_id":    envelope.Id,
		"type":        envelope.Type,
		"occurred_at": envelope.OccurredAt.Format(time.RFC3339Nano),
		"data":        envelope.Data,
	})
	msg.Ack()
}
