// FILE: internal/service/publisher_service.go
package service

import (
	"context"

	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const eventTypeMetadata = "event_type"

type IPublisherService interface {
	// Publish never fails the caller; delivery problems are logged.
	Publish(ctx context.Context, event events.Event)
}

type publisherService struct {
	topicName string
	publisher message.Publisher
	logger    logger.ILogger
}

func NewPublisherService(topicName string, publisher message.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
		logger:    log,
	}
}

func (p *publisherService) Publish(_ context.Context, event events.Event) {
	payload, err := events.Marshal(event)
	if err != nil {
		p.logger.Error("PublisherService", "Failed to encode event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(eventTypeMetadata, event.EventType())

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("PublisherService", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"topic": p.topicName,
			"error": err.Error(),
		})
	}
}
