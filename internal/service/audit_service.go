package service

import (
	"context"
	"encoding/json"

	"documentor-ai-be/internal/pkg/logger"
	"documentor-ai-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IAuditService consumes session lifecycle events off the in-process bus
// and writes them to the audit log.
type IAuditService interface {
	Consume(ctx context.Context) error
}

type auditService struct {
	pubSub *gochannel.GoChannel
	topic  string
	log    logger.ILogger
}

func NewAuditService(pubSub *gochannel.GoChannel, topic string, log logger.ILogger) IAuditService {
	return &auditService{
		pubSub: pubSub,
		topic:  topic,
		log:    log,
	}
}

func (as *auditService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(msg)
		}
	}()

	return nil
}

func (as *auditService) processMessage(msg *message.Message) {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		as.log.Error("AUDIT", "Failed to unmarshal lifecycle event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	as.log.Info("AUDIT", envelope.Type, map[string]interface{}{
		"occurred_at": envelope.OccurredAt,
		"data":        envelope.Data,
	})
	msg.Ack()
}
